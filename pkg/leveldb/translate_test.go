package leveldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/levelbind/pkg/db"
)

func TestTranslateOpen(t *testing.T) {
	defaults := db.Options{Compression: db.NoCompression}

	tests := []struct {
		name string
		cfg  OpenConfig
		want db.Options
	}{
		{
			name: "nil_config",
			cfg:  nil,
			want: defaults,
		},
		{
			name: "nil_pointer",
			cfg:  (*OpenOptions)(nil),
			want: defaults,
		},
		{
			name: "empty_record",
			cfg:  NewOpenOptions(),
			want: defaults,
		},
		{
			name: "flags",
			cfg: NewOpenOptions(
				WithCreateIfMissing(true),
				WithErrorIfExists(true),
				WithParanoidChecks(true),
				WithCompression(true),
			),
			want: db.Options{
				CreateIfMissing: true,
				ErrorIfExists:   true,
				ParanoidChecks:  true,
				Compression:     db.SnappyCompression,
			},
		},
		{
			name: "sizes",
			cfg: NewOpenOptions(
				WithWriteBufferSize(8<<20),
				WithMaxOpenFiles(500),
				WithBlockSize(16<<10),
				WithBlockRestartInterval(32),
			),
			want: db.Options{
				WriteBufferSize:      8 << 20,
				MaxOpenFiles:         500,
				BlockSize:            16 << 10,
				BlockRestartInterval: 32,
				Compression:          db.NoCompression,
			},
		},
		{
			name: "zero_cache_budget",
			cfg:  NewOpenOptions(WithCacheSize(0)),
			want: defaults,
		},
		{
			name: "negative_cache_budget",
			cfg:  NewOpenOptions(WithCacheSize(-1)),
			want: defaults,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TranslateOpen(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTranslateOpenCache(t *testing.T) {
	opts := NewOpenOptions(WithCacheSize(1 << 20))
	got, err := TranslateOpen(&opts)
	require.NoError(t, err)
	require.NotNil(t, got.Cache)
	assert.Equal(t, int64(1<<20), got.Cache.Capacity())

	size, ok := opts.CacheSize()
	assert.True(t, ok)
	assert.Equal(t, int64(1<<20), size)
}

func TestTranslateRead(t *testing.T) {
	tests := []struct {
		name string
		cfg  ReadConfig
		want db.ReadOptions
	}{
		{
			name: "nil_config",
			cfg:  nil,
			want: db.ReadOptions{FillCache: true},
		},
		{
			name: "nil_pointer",
			cfg:  (*ReadOptions)(nil),
			want: db.ReadOptions{FillCache: true},
		},
		{
			name: "defaults",
			cfg:  NewReadOptions(),
			want: db.ReadOptions{FillCache: true},
		},
		{
			name: "verify_no_fill",
			cfg:  NewReadOptions(WithVerifyChecksums(true), WithFillCache(false)),
			want: db.ReadOptions{VerifyChecksums: true},
		},
		{
			name: "last_setting_wins",
			cfg:  NewReadOptions(WithFillCache(false), WithFillCache(true)),
			want: db.ReadOptions{FillCache: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TranslateRead(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTranslateWrite(t *testing.T) {
	got, err := TranslateWrite(nil)
	require.NoError(t, err)
	assert.False(t, got.Sync)

	opts := NewWriteOptions(WithSync(true))
	got, err = TranslateWrite(&opts)
	require.NoError(t, err)
	assert.True(t, got.Sync)
	assert.True(t, opts.Sync())
}

func TestTranslateRawOptions(t *testing.T) {
	raws := []RawOptions{nil, {}, {"create_if_missing": "true", "sync": "true"}}

	for _, raw := range raws {
		_, err := TranslateOpen(raw)
		assert.ErrorIs(t, err, ErrRawOptionsNotImplemented)
		_, err = TranslateRead(raw)
		assert.ErrorIs(t, err, ErrRawOptionsNotImplemented)
		_, err = TranslateWrite(raw)
		assert.ErrorIs(t, err, ErrRawOptionsNotImplemented)
	}
}

func TestOpenOptionsAccessors(t *testing.T) {
	opts := NewOpenOptions()
	assert.False(t, opts.CreateIfMissing())
	assert.False(t, opts.ErrorIfExists())
	assert.False(t, opts.ParanoidChecks())
	assert.False(t, opts.Compression())
	_, ok := opts.WriteBufferSize()
	assert.False(t, ok)
	_, ok = opts.MaxOpenFiles()
	assert.False(t, ok)
	_, ok = opts.BlockSize()
	assert.False(t, ok)
	_, ok = opts.BlockRestartInterval()
	assert.False(t, ok)
	_, ok = opts.CacheSize()
	assert.False(t, ok)

	opts = NewOpenOptions(WithBlockSize(0))
	size, ok := opts.BlockSize()
	assert.True(t, ok, "an explicit zero is still set")
	assert.Equal(t, 0, size)

	read := NewReadOptions()
	assert.False(t, read.VerifyChecksums())
	assert.True(t, read.FillCache())
}
