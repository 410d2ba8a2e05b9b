package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `
[logging]
level = "info"
format = "text"
output = "stdout"

[generator]
api_key = "sk-test"
model = "gpt-4o-mini"

[vault]
dir = "/tmp/notes"

[schedule]
mode = "daily"
time = "09:00"
batch_size = 3
topics = ["Transformers", "RAG"]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Generator.APIKey)
	assert.Equal(t, "daily", cfg.Schedule.Mode)
	assert.Equal(t, 3, cfg.Schedule.BatchSize)
	assert.Empty(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[generator]
api_key = "sk-test"

[vault]
dir = "/tmp/notes"
`))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 60, cfg.Generator.TimeoutSeconds)
	assert.Equal(t, "{date}_{topic}", cfg.Vault.FilenameFormat)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "main", cfg.Git.Branch)
	assert.Equal(t, 1, cfg.Schedule.BatchSize)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("NOTEFORGE_TEST_KEY", "sk-from-env")

	cfg, err := Load(writeConfig(t, `
[generator]
api_key = "${NOTEFORGE_TEST_KEY}"

[vault]
dir = "/tmp/notes"
`))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Generator.APIKey)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[logging]
level = "loud"
format = "xml"

[schedule]
mode = "weekly"
`))
	require.NoError(t, err)

	errs := cfg.Validate()
	require.NotEmpty(t, errs)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := ""
	for _, m := range msgs {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "invalid logging.level")
	assert.Contains(t, joined, "invalid logging.format")
	assert.Contains(t, joined, "generator.api_key is required")
	assert.Contains(t, joined, "vault.dir is required")
	assert.Contains(t, joined, "invalid schedule.mode")
}

func TestValidateScheduleModes(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[generator]
api_key = "sk-test"

[vault]
dir = "/tmp/notes"

[schedule]
mode = "interval"
interval = "ninety minutes"
topics = ["a"]
`))
	require.NoError(t, err)

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "invalid schedule.interval")
}

func TestValidateTelegram(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[generator]
api_key = "sk-test"

[vault]
dir = "/tmp/notes"

[notify.telegram]
enabled = true
`))
	require.NoError(t, err)

	errs := cfg.Validate()
	require.Len(t, errs, 2)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("short"))
	assert.Equal(t, "sk-a...wxyz", MaskSecret("sk-abcdefgh-tuvwxyz"))
}

func TestLoadEnvOptional(t *testing.T) {
	assert.NoError(t, LoadEnvOptional(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nNOTEFORGE_ENV_TEST=hello\n"), 0644))
	require.NoError(t, LoadEnvOptional(path))
	assert.Equal(t, "hello", os.Getenv("NOTEFORGE_ENV_TEST"))
	t.Cleanup(func() { os.Unsetenv("NOTEFORGE_ENV_TEST") })
}
