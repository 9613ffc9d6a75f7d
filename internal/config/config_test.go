package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SQLITE_DATABASE", "GTFS_DIR", "CLEANED_DATA_DIR", "REPORT_TOP_N", "TRANSIT_LOG_FORMAT", "TRANSIT_DEBUG", "TRANSIT_CONFIG"} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "transit.db", cfg.DatabasePath)
	assert.Equal(t, ".", cfg.FeedDir)
	assert.Equal(t, "cleaned_data", cfg.OutputDir)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRANSIT_CONFIG", "")
	t.Setenv("SQLITE_DATABASE", "/data/feed.db")
	t.Setenv("GTFS_DIR", "/data/gtfs")
	t.Setenv("CLEANED_DATA_DIR", "/data/out")
	t.Setenv("REPORT_TOP_N", "5")
	t.Setenv("TRANSIT_DEBUG", "YES")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/feed.db", cfg.DatabasePath)
	assert.Equal(t, "/data/gtfs", cfg.FeedDir)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, 5, cfg.TopN)
	assert.True(t, cfg.Debug)
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("REPORT_TOP_N", "lots")
	assert.Equal(t, 10, getEnvInt("REPORT_TOP_N", 10))

	t.Setenv("REPORT_TOP_N", "-3")
	assert.Equal(t, 10, getEnvInt("REPORT_TOP_N", 10))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLEANED_DATA_DIR=from_dotenv\n"), 0644))

	t.Setenv("TRANSIT_CONFIG", "")
	// t.Setenv restores the variable afterwards; unset it so .env applies
	t.Setenv("CLEANED_DATA_DIR", "")
	require.NoError(t, os.Unsetenv("CLEANED_DATA_DIR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.OutputDir)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	for _, key := range []string{"SQLITE_DATABASE", "GTFS_DIR", "CLEANED_DATA_DIR", "REPORT_TOP_N", "TRANSIT_LOG_FORMAT", "TRANSIT_DEBUG", "TRANSIT_CONFIG"} {
		t.Setenv(key, "")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(
		"database: feed.db\nfeed_dir: gtfs\ntop_n: 3\nlog_format: JSON\ndebug: true\n",
	), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "feed.db", cfg.DatabasePath)
	assert.Equal(t, "gtfs", cfg.FeedDir)
	assert.Equal(t, "cleaned_data", cfg.OutputDir)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "JSON", cfg.LogFormat)
	assert.True(t, cfg.Debug)

	// environment wins over the file
	t.Setenv("REPORT_TOP_N", "7")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopN)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("REPORT_TOP_N", "")
	t.Setenv("TRANSIT_LOG_FORMAT", "")

	path := filepath.Join(dir, "bad.yml")
	t.Setenv("TRANSIT_CONFIG", path)

	require.NoError(t, os.WriteFile(path, []byte("top_n: 0\n"), 0644))
	_, err := Load()
	assert.ErrorContains(t, err, "invalid configuration")

	require.NoError(t, os.WriteFile(path, []byte("top_n: [\n"), 0644))
	_, err = Load()
	assert.ErrorContains(t, err, "failed to parse config file")

	t.Setenv("TRANSIT_CONFIG", filepath.Join(dir, "missing.yml"))
	_, err = Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlagsDefaultToConfig(t *testing.T) {
	cfg := &Config{DatabasePath: "a.db", FeedDir: "feed", OutputDir: "out", TopN: 4}

	assert.Equal(t, "a.db", cfg.DatabaseFlag().(*cli.StringFlag).Value)
	assert.Equal(t, "feed", cfg.FeedDirFlag().(*cli.StringFlag).Value)
	assert.Equal(t, "out", cfg.OutputDirFlag().(*cli.StringFlag).Value)
	assert.Equal(t, 4, cfg.TopNFlag().(*cli.IntFlag).Value)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
