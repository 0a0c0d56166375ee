//go:build darwin || freebsd || linux

package clevel

import (
	"github.com/eigerco/levelbind/pkg/db"
)

type cOptions struct {
	ptr   uintptr
	cache uintptr
}

// newOptions builds a leveldb_options_t. Integer overrides are only set
// when non-zero so the library keeps its own defaults otherwise. The
// caller owns both the options and the cache, if one was created.
func (l *Library) newOptions(opts db.Options) cOptions {
	o := cOptions{ptr: l.optionsCreate()}

	l.optionsSetCreateIfMissing(o.ptr, cBool(opts.CreateIfMissing))
	l.optionsSetErrorIfExists(o.ptr, cBool(opts.ErrorIfExists))
	l.optionsSetParanoidChecks(o.ptr, cBool(opts.ParanoidChecks))
	if opts.WriteBufferSize > 0 {
		l.optionsSetWriteBufferSize(o.ptr, uintptr(opts.WriteBufferSize))
	}
	if opts.MaxOpenFiles > 0 {
		l.optionsSetMaxOpenFiles(o.ptr, int32(opts.MaxOpenFiles))
	}
	if opts.BlockSize > 0 {
		l.optionsSetBlockSize(o.ptr, uintptr(opts.BlockSize))
	}
	if opts.BlockRestartInterval > 0 {
		l.optionsSetBlockRestartInterval(o.ptr, int32(opts.BlockRestartInterval))
	}
	if opts.Compression == db.SnappyCompression {
		l.optionsSetCompression(o.ptr, cSnappyCompression)
	} else {
		l.optionsSetCompression(o.ptr, cNoCompression)
	}
	if opts.Cache != nil {
		o.cache = l.cacheCreateLRU(uintptr(opts.Cache.Capacity()))
		l.optionsSetCache(o.ptr, o.cache)
	}
	return o
}

func (l *Library) newReadOptions(opts db.ReadOptions) uintptr {
	ro := l.readOptionsCreate()
	l.readOptionsSetVerifyChecksums(ro, cBool(opts.VerifyChecksums))
	l.readOptionsSetFillCache(ro, cBool(opts.FillCache))
	return ro
}

func (l *Library) newWriteOptions(opts db.WriteOptions) uintptr {
	wo := l.writeOptionsCreate()
	l.writeOptionsSetSync(wo, cBool(opts.Sync))
	return wo
}
