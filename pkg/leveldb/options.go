package leveldb

import (
	"github.com/rs/zerolog"
)

// OpenConfig is the shape open options may be supplied in: OpenOptions,
// *OpenOptions or RawOptions. A nil OpenConfig means no field is set.
type OpenConfig interface {
	isOpenConfig()
}

// ReadConfig is the shape read options may be supplied in: ReadOptions,
// *ReadOptions or RawOptions.
type ReadConfig interface {
	isReadConfig()
}

// WriteConfig is the shape write options may be supplied in: WriteOptions,
// *WriteOptions or RawOptions.
type WriteConfig interface {
	isWriteConfig()
}

// RawOptions is an untyped mapping of option names to values. It is
// accepted wherever options are, but translating it is not implemented:
// every use fails with ErrRawOptionsNotImplemented.
type RawOptions map[string]string

func (RawOptions) isOpenConfig()  {}
func (RawOptions) isReadConfig()  {}
func (RawOptions) isWriteConfig() {}

type optional[T any] struct {
	value T
	set   bool
}

func some[T any](v T) optional[T] {
	return optional[T]{value: v, set: true}
}

func (o optional[T]) get() (T, bool) {
	return o.value, o.set
}

// OpenOptions configure how a database is opened. The zero value holds
// every documented default: nothing is created, existing databases are
// accepted, no paranoid checks, no compression, the engine's own sizes and
// no dedicated block cache.
type OpenOptions struct {
	createIfMissing      bool
	errorIfExists        bool
	paranoidChecks       bool
	writeBufferSize      optional[int]
	maxOpenFiles         optional[int]
	blockSize            optional[int]
	blockRestartInterval optional[int]
	compression          bool
	cacheSize            optional[int64]
}

func (OpenOptions) isOpenConfig() {}

type OpenOption func(*OpenOptions)

// NewOpenOptions returns OpenOptions with defaults for every field not set
// by opts.
func NewOpenOptions(opts ...OpenOption) OpenOptions {
	var o OpenOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCreateIfMissing creates the database if it does not exist.
func WithCreateIfMissing(v bool) OpenOption {
	return func(o *OpenOptions) { o.createIfMissing = v }
}

// WithErrorIfExists fails the open if the database already exists.
func WithErrorIfExists(v bool) OpenOption {
	return func(o *OpenOptions) { o.errorIfExists = v }
}

// WithParanoidChecks makes the engine report corruption as soon as it is
// detected.
func WithParanoidChecks(v bool) OpenOption {
	return func(o *OpenOptions) { o.paranoidChecks = v }
}

// WithWriteBufferSize overrides the size of the write buffer in bytes.
func WithWriteBufferSize(n int) OpenOption {
	return func(o *OpenOptions) { o.writeBufferSize = some(n) }
}

// WithMaxOpenFiles overrides the number of files the engine keeps open.
func WithMaxOpenFiles(n int) OpenOption {
	return func(o *OpenOptions) { o.maxOpenFiles = some(n) }
}

// WithBlockSize overrides the size of the blocks written and cached.
func WithBlockSize(n int) OpenOption {
	return func(o *OpenOptions) { o.blockSize = some(n) }
}

// WithBlockRestartInterval overrides the number of keys between restart
// points.
func WithBlockRestartInterval(n int) OpenOption {
	return func(o *OpenOptions) { o.blockRestartInterval = some(n) }
}

// WithCompression writes blocks with the engine's fast built-in
// compressor instead of uncompressed.
func WithCompression(v bool) OpenOption {
	return func(o *OpenOptions) { o.compression = v }
}

// WithCacheSize gives the engine a dedicated block cache of n bytes.
func WithCacheSize(n int64) OpenOption {
	return func(o *OpenOptions) { o.cacheSize = some(n) }
}

func (o OpenOptions) CreateIfMissing() bool { return o.createIfMissing }
func (o OpenOptions) ErrorIfExists() bool   { return o.errorIfExists }
func (o OpenOptions) ParanoidChecks() bool  { return o.paranoidChecks }
func (o OpenOptions) Compression() bool     { return o.compression }

func (o OpenOptions) WriteBufferSize() (int, bool)      { return o.writeBufferSize.get() }
func (o OpenOptions) MaxOpenFiles() (int, bool)         { return o.maxOpenFiles.get() }
func (o OpenOptions) BlockSize() (int, bool)            { return o.blockSize.get() }
func (o OpenOptions) BlockRestartInterval() (int, bool) { return o.blockRestartInterval.get() }
func (o OpenOptions) CacheSize() (int64, bool)          { return o.cacheSize.get() }

func (o OpenOptions) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("create_if_missing", o.createIfMissing).
		Bool("error_if_exists", o.errorIfExists).
		Bool("paranoid_checks", o.paranoidChecks).
		Bool("compression", o.compression)
	if v, ok := o.writeBufferSize.get(); ok {
		e.Int("write_buffer_size", v)
	}
	if v, ok := o.maxOpenFiles.get(); ok {
		e.Int("max_open_files", v)
	}
	if v, ok := o.blockSize.get(); ok {
		e.Int("block_size", v)
	}
	if v, ok := o.blockRestartInterval.get(); ok {
		e.Int("block_restart_interval", v)
	}
	if v, ok := o.cacheSize.get(); ok {
		e.Int64("cache_size", v)
	}
}

// ReadOptions configure reads and iteration. The zero value does not
// verify checksums and fills the block cache.
type ReadOptions struct {
	verifyChecksums bool
	skipFillCache   bool
}

func (ReadOptions) isReadConfig() {}

type ReadOption func(*ReadOptions)

// NewReadOptions returns ReadOptions with defaults for every field not set
// by opts.
func NewReadOptions(opts ...ReadOption) ReadOptions {
	var o ReadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithVerifyChecksums verifies stored checksums on every read.
func WithVerifyChecksums(v bool) ReadOption {
	return func(o *ReadOptions) { o.verifyChecksums = v }
}

// WithFillCache controls whether blocks read are added to the cache.
func WithFillCache(v bool) ReadOption {
	return func(o *ReadOptions) { o.skipFillCache = !v }
}

func (o ReadOptions) VerifyChecksums() bool { return o.verifyChecksums }
func (o ReadOptions) FillCache() bool       { return !o.skipFillCache }

func (o ReadOptions) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("verify_checksums", o.verifyChecksums).
		Bool("fill_cache", !o.skipFillCache)
}

// WriteOptions configure writes. The zero value does not sync.
type WriteOptions struct {
	sync bool
}

func (WriteOptions) isWriteConfig() {}

type WriteOption func(*WriteOptions)

// NewWriteOptions returns WriteOptions with defaults for every field not
// set by opts.
func NewWriteOptions(opts ...WriteOption) WriteOptions {
	var o WriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSync flushes each write to stable storage before acknowledging it.
func WithSync(v bool) WriteOption {
	return func(o *WriteOptions) { o.sync = v }
}

func (o WriteOptions) Sync() bool { return o.sync }

func (o WriteOptions) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("sync", o.sync)
}
