// Package vault persists generated notes as Markdown files in a local
// directory, with sanitized filenames and optional YAML frontmatter.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/noteforge/noteforge/internal/logger"
)

// Config contains configuration for the note store.
type Config struct {
	Dir            string   // vault root directory
	FilenameFormat string   // template, e.g. "{date}_{topic}"
	Frontmatter    bool     // prepend YAML frontmatter
	Tags           []string // frontmatter tags
	Category       string   // frontmatter category
}

// DirStore writes notes into a directory tree.
type DirStore struct {
	cfg    Config
	logger *logger.Logger
	now    func() time.Time
}

// NewDirStore creates the store and ensures the vault directory exists.
func NewDirStore(cfg Config, log *logger.Logger) (*DirStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("vault directory is required")
	}
	if cfg.FilenameFormat == "" {
		cfg.FilenameFormat = "{date}_{topic}"
	}

	if strings.HasPrefix(cfg.Dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Dir = filepath.Join(home, cfg.Dir[2:])
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	return &DirStore{cfg: cfg, logger: log, now: time.Now}, nil
}

// Save writes the note and returns the absolute path of the created file.
// Filename collisions are resolved with a numeric suffix, never by
// overwriting an existing note.
func (d *DirStore) Save(content, topic string) (string, error) {
	name := d.buildFilename(topic)

	path := filepath.Join(d.cfg.Dir, name+".md")
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(d.cfg.Dir, name+"_"+strconv.Itoa(i)+".md")
	}

	if dir := filepath.Dir(path); dir != d.cfg.Dir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create note directory: %w", err)
		}
	}

	body := content
	if d.cfg.Frontmatter {
		fm, err := d.frontmatter(topic)
		if err != nil {
			return "", err
		}
		body = fm + content
	}

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write note: %w", err)
	}

	d.logger.Info("note saved",
		logger.Field{Key: "topic", Value: topic},
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "bytes", Value: len(body)})

	return path, nil
}

// buildFilename expands the filename template. Path separators produced by
// the template create subdirectories; separators inside the topic itself
// are stripped by sanitization first.
func (d *DirStore) buildFilename(topic string) string {
	now := d.now()
	repl := strings.NewReplacer(
		"{date}", now.Format("2006-01-02"),
		"{datetime}", now.Format("2006-01-02_15-04-05"),
		"{timestamp}", strconv.FormatInt(now.Unix(), 10),
		"{topic}", sanitizeFilename(topic),
	)
	name := repl.Replace(d.cfg.FilenameFormat)
	name = filepath.ToSlash(name)

	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = sanitizeFilename(p)
	}
	return filepath.Join(parts...)
}
