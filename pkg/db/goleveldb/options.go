package goleveldb

import (
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/eigerco/levelbind/pkg/db"
)

// newOptions maps engine options onto goleveldb's. goleveldb treats zero
// integers as "use the default", the same convention db.Options follows.
func newOptions(opts db.Options) *opt.Options {
	o := &opt.Options{
		ErrorIfMissing:         !opts.CreateIfMissing,
		ErrorIfExist:           opts.ErrorIfExists,
		WriteBuffer:            opts.WriteBufferSize,
		OpenFilesCacheCapacity: opts.MaxOpenFiles,
		BlockSize:              opts.BlockSize,
		BlockRestartInterval:   opts.BlockRestartInterval,
		Compression:            compression(opts.Compression),
	}
	if opts.ParanoidChecks {
		o.Strict = opt.StrictAll
	}
	if opts.Cache != nil {
		o.BlockCacheCapacity = int(opts.Cache.Capacity())
	}
	return o
}

func compression(c db.Compression) opt.Compression {
	if c == db.SnappyCompression {
		return opt.SnappyCompression
	}
	return opt.NoCompression
}

func readOptions(opts db.ReadOptions) *opt.ReadOptions {
	ro := &opt.ReadOptions{DontFillCache: !opts.FillCache}
	if opts.VerifyChecksums {
		ro.Strict = opt.StrictBlockChecksum
	}
	return ro
}

func writeOptions(opts db.WriteOptions) *opt.WriteOptions {
	return &opt.WriteOptions{Sync: opts.Sync}
}
