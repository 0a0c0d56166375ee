package leveldb

import (
	"fmt"

	"github.com/eigerco/levelbind/pkg/db"
)

// TranslateOpen converts open options into the engine's options. Unset
// fields map to their documented defaults; RawOptions are rejected.
func TranslateOpen(cfg OpenConfig) (db.Options, error) {
	switch c := cfg.(type) {
	case nil:
		return OpenOptions{}.engineOptions(), nil
	case OpenOptions:
		return c.engineOptions(), nil
	case *OpenOptions:
		if c == nil {
			return OpenOptions{}.engineOptions(), nil
		}
		return c.engineOptions(), nil
	case RawOptions:
		return db.Options{}, fmt.Errorf("open options: %w", ErrRawOptionsNotImplemented)
	default:
		return db.Options{}, fmt.Errorf("open options: unsupported type %T", cfg)
	}
}

// TranslateRead converts read options into the engine's read options.
func TranslateRead(cfg ReadConfig) (db.ReadOptions, error) {
	switch c := cfg.(type) {
	case nil:
		return ReadOptions{}.engineOptions(), nil
	case ReadOptions:
		return c.engineOptions(), nil
	case *ReadOptions:
		if c == nil {
			return ReadOptions{}.engineOptions(), nil
		}
		return c.engineOptions(), nil
	case RawOptions:
		return db.ReadOptions{}, fmt.Errorf("read options: %w", ErrRawOptionsNotImplemented)
	default:
		return db.ReadOptions{}, fmt.Errorf("read options: unsupported type %T", cfg)
	}
}

// TranslateWrite converts write options into the engine's write options.
func TranslateWrite(cfg WriteConfig) (db.WriteOptions, error) {
	switch c := cfg.(type) {
	case nil:
		return WriteOptions{}.engineOptions(), nil
	case WriteOptions:
		return c.engineOptions(), nil
	case *WriteOptions:
		if c == nil {
			return WriteOptions{}.engineOptions(), nil
		}
		return c.engineOptions(), nil
	case RawOptions:
		return db.WriteOptions{}, fmt.Errorf("write options: %w", ErrRawOptionsNotImplemented)
	default:
		return db.WriteOptions{}, fmt.Errorf("write options: unsupported type %T", cfg)
	}
}

func (o OpenOptions) engineOptions() db.Options {
	opts := db.Options{
		CreateIfMissing: o.createIfMissing,
		ErrorIfExists:   o.errorIfExists,
		ParanoidChecks:  o.paranoidChecks,
		Compression:     db.NoCompression,
	}
	if v, ok := o.writeBufferSize.get(); ok {
		opts.WriteBufferSize = v
	}
	if v, ok := o.maxOpenFiles.get(); ok {
		opts.MaxOpenFiles = v
	}
	if v, ok := o.blockSize.get(); ok {
		opts.BlockSize = v
	}
	if v, ok := o.blockRestartInterval.get(); ok {
		opts.BlockRestartInterval = v
	}
	if o.compression {
		opts.Compression = db.SnappyCompression
	}
	// A cache is only built for a positive budget; never a zero-sized one
	if v, ok := o.cacheSize.get(); ok && v > 0 {
		opts.Cache = db.NewCache(v)
	}
	return opts
}

func (o ReadOptions) engineOptions() db.ReadOptions {
	return db.ReadOptions{
		VerifyChecksums: o.verifyChecksums,
		FillCache:       !o.skipFillCache,
	}
}

func (o WriteOptions) engineOptions() db.WriteOptions {
	return db.WriteOptions{Sync: o.sync}
}
