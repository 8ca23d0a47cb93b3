package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigOverridesSomeValues(t *testing.T) {
	path := writeConfig(t, `
[convert]
input = "data/clues.csv"
min_clue_count = 3
collation = "locale"

[cli]
default_lengths = [5, 6]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/clues.csv", cfg.Convert.Input)
	assert.Equal(t, 3, cfg.Convert.MinClueCount)
	assert.Equal(t, "locale", cfg.Convert.Collation)
	assert.Equal(t, DefaultConfig().Convert.Output, cfg.Convert.Output)
	assert.Equal(t, []int{5, 6}, cfg.CLI.DefaultLengths)
	assert.Equal(t, "msgpack", cfg.Server.Codec)
}

func TestLoadConfigRecoversFromTypeErrors(t *testing.T) {
	path := writeConfig(t, `
[convert]
min_clue_count = "lots"
output = "out/words.json"

[server]
codec = "json"
outbox_size = "big"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Convert.MinClueCount)
	assert.Equal(t, "out/words.json", cfg.Convert.Output)
	assert.Equal(t, "json", cfg.Server.Codec)
	assert.Equal(t, 64, cfg.Server.OutboxSize)
}

func TestLoadConfigFallsBackOnSyntaxErrors(t *testing.T) {
	path := writeConfig(t, "[convert\ninput = ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSanitize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convert.MinClueCount = -4
	cfg.Convert.ProgressEvery = -1
	cfg.Server.OutboxSize = 0
	cfg.CLI.DefaultMin = 0
	cfg.CLI.MaxWordsShown = -2

	cfg.Sanitize()

	assert.Equal(t, 1, cfg.Convert.MinClueCount)
	assert.Equal(t, 0, cfg.Convert.ProgressEvery)
	assert.Equal(t, 64, cfg.Server.OutboxSize)
	assert.Equal(t, 1, cfg.CLI.DefaultMin)
	assert.Equal(t, 40, cfg.CLI.MaxWordsShown)
}

func TestLoadConfigWithPriorityPrefersCustomPath(t *testing.T) {
	path := writeConfig(t, "[server]\nmetrics_addr = \":9100\"\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
}
