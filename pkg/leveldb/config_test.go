package leveldb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, cfg Config)
	}{
		{
			name:  "empty_document",
			input: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:  "engine_only",
			input: "engine: pebble\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, EnginePebble, cfg.Engine)
				assert.Equal(t, NewOpenOptions(), cfg.Open)
				assert.True(t, cfg.Read.FillCache())
			},
		},
		{
			name: "every_section",
			input: `
engine: libleveldb
library: libleveldb.so.1
open:
  create_if_missing: true
  error_if_exists: false
  paranoid_checks: true
  write_buffer_size: 4194304
  max_open_files: 100
  block_size: 4096
  block_restart_interval: 16
  compression: true
  cache_size: 8388608
read:
  verify_checksums: true
  fill_cache: false
write:
  sync: true
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, EngineLibLevelDB, cfg.Engine)
				assert.Equal(t, "libleveldb.so.1", cfg.Library)
				assert.Equal(t, NewOpenOptions(
					WithCreateIfMissing(true),
					WithErrorIfExists(false),
					WithParanoidChecks(true),
					WithWriteBufferSize(4194304),
					WithMaxOpenFiles(100),
					WithBlockSize(4096),
					WithBlockRestartInterval(16),
					WithCompression(true),
					WithCacheSize(8388608),
				), cfg.Open)
				assert.Equal(t, NewReadOptions(WithVerifyChecksums(true), WithFillCache(false)), cfg.Read)
				assert.Equal(t, NewWriteOptions(WithSync(true)), cfg.Write)
			},
		},
		{
			name:  "partial_open",
			input: "open:\n  block_size: 0\n",
			check: func(t *testing.T, cfg Config) {
				size, ok := cfg.Open.BlockSize()
				assert.True(t, ok)
				assert.Zero(t, size)
				_, ok = cfg.Open.CacheSize()
				assert.False(t, ok)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(strings.NewReader(tc.input))
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unknown_top_level", input: "engines: pebble\n", want: "engines"},
		{name: "unknown_open_key", input: "open:\n  create: true\n", want: `unknown option "create"`},
		{name: "unknown_read_key", input: "read:\n  checksums: true\n", want: `unknown option "checksums"`},
		{name: "unknown_write_key", input: "write:\n  fsync: true\n", want: `unknown option "fsync"`},
		{name: "not_a_mapping", input: "open: yes\n", want: "expected a mapping"},
		{name: "wrong_type", input: "open:\n  cache_size: lots\n", want: "lots"},
		{name: "unknown_engine", input: "engine: rocksdb\n", want: "unknown engine"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: goleveldb\nwrite:\n  sync: true\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, EngineGoLevelDB, cfg.Engine)
	assert.True(t, cfg.Write.Sync())
	assert.Len(t, cfg.DatabaseOptions(), 2)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open config")
}

func TestParseEngineType(t *testing.T) {
	engine, err := ParseEngineType("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngine, engine)

	for _, e := range Engines {
		got, err := ParseEngineType(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err = ParseEngineType("LevelDB")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}
