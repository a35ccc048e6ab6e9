package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
	assert.Equal(t, constants.DefaultMaxUploadSizeBytes, cfg.UploadSizeBytes())
	assert.Equal(t, DefaultMaxBatchRuns, cfg.MaxBatchRuns)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Empty(t, cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.OutputFile)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
maxBatchRuns: 50
writeTimeout: 2m
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	require.NoError(t, os.WriteFile(path, contents, 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, int64(2*1024*1024), cfg.UploadSizeBytes())
	assert.Equal(t, 50, cfg.MaxBatchRuns)
	assert.Equal(t, 2*time.Minute, cfg.WriteTimeout)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/tmp/server.log", cfg.Logging.OutputFile)
}

func TestLoadConfigInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.SetUploadSizeBytes(4096)
	assert.Equal(t, int64(4096), cfg.UploadSizeBytes())
	cfg.SetUploadSizeBytes(0)
	assert.Equal(t, int64(4096), cfg.UploadSizeBytes())
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
		"8 kb":      8 * 1024,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := ParseSize(input)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}

	for _, bad := range []string{"1TB", "abc", "9999999999999999999G"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}
