package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"MIDIMIND_DB_PATH", "OUTPUT_DIR", "COMPARE_COMMAND", "LOG_LEVEL",
	"LOG_FILE", "LOG_MAX_SIZE", "LOG_MAX_BACKUPS", "LOG_MAX_AGE",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "node compare-parsers.js", cfg.CompareCommand)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 10, cfg.LogMaxSize)
	assert.Equal(t, 3, cfg.LogMaxBackups)
	assert.Equal(t, 28, cfg.LogMaxAge)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("MIDIMIND_DB_PATH", "/srv/midimind.db")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("COMPARE_COMMAND", "midicheck")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_MAX_SIZE", "50")
	t.Setenv("LOG_MAX_BACKUPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "/srv/midimind.db", cfg.DBPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "midicheck", cfg.CompareCommand)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.LogMaxSize)
	assert.Equal(t, 3, cfg.LogMaxBackups)
	assert.Equal(t, 28, cfg.LogMaxAge)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("OUTPUT_DIR=from-dotenv\nCOMPARE_COMMAND=from-dotenv\n"), 0644))
	t.Setenv("COMPARE_COMMAND", "from-env")

	cfg := Load()

	assert.Equal(t, "from-dotenv", cfg.OutputDir)
	assert.Equal(t, "from-env", cfg.CompareCommand)
}

// chdir switches the working directory for the rest of the test and restores
// it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
