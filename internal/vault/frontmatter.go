package vault

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// noteMeta is the YAML frontmatter block prepended to each note.
type noteMeta struct {
	Title    string   `yaml:"title"`
	Created  string   `yaml:"created"`
	Tags     []string `yaml:"tags,omitempty"`
	Category string   `yaml:"category,omitempty"`
}

func (d *DirStore) frontmatter(topic string) (string, error) {
	meta := noteMeta{
		Title:    topic,
		Created:  d.now().Format(time.RFC3339),
		Tags:     d.cfg.Tags,
		Category: d.cfg.Category,
	}

	out, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	return "---\n" + string(out) + "---\n\n", nil
}
