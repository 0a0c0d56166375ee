package pebble

import (
	"github.com/cockroachdb/pebble"

	"github.com/eigerco/levelbind/pkg/db"
)

// numLevels matches the LSM depth pebble uses by default.
const numLevels = 7

// newOptions maps engine options onto pebble's. Fields left at their zero
// value are filled in by pebble itself when the database is opened.
func newOptions(opts db.Options) *pebble.Options {
	pebbleOpts := &pebble.Options{
		ErrorIfExists:    opts.ErrorIfExists,
		ErrorIfNotExists: !opts.CreateIfMissing,
		MaxOpenFiles:     opts.MaxOpenFiles,
		Levels:           make([]pebble.LevelOptions, numLevels),
	}
	if opts.WriteBufferSize > 0 {
		pebbleOpts.MemTableSize = uint64(opts.WriteBufferSize)
	}
	if opts.Cache != nil {
		pebbleOpts.Cache = pebble.NewCache(opts.Cache.Capacity())
	}

	for i := range pebbleOpts.Levels {
		l := &pebbleOpts.Levels[i]
		l.BlockSize = opts.BlockSize
		l.BlockRestartInterval = opts.BlockRestartInterval
		l.Compression = compression(opts.Compression)
	}
	return pebbleOpts
}

func compression(c db.Compression) pebble.Compression {
	if c == db.SnappyCompression {
		return pebble.SnappyCompression
	}
	return pebble.NoCompression
}

func writeOptions(opts db.WriteOptions) *pebble.WriteOptions {
	if opts.Sync {
		return pebble.Sync
	}
	return pebble.NoSync
}
