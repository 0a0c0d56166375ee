//go:build darwin || freebsd || linux

// Package clevel implements db.Engine on top of the native LevelDB C
// library. The library is loaded at runtime with purego, so no C toolchain
// is needed to build this package.
package clevel

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/eigerco/levelbind/pkg/log"
)

// DefaultLibraryNames are tried in order when no library name is given.
var DefaultLibraryNames = []string{
	"libleveldb.so.1",
	"libleveldb.so",
	"libleveldb.1.dylib",
	"libleveldb.dylib",
}

// Library is a loaded libleveldb with its C entry points bound to Go
// functions. Libraries are never unloaded.
type Library struct {
	name string

	optionsCreate                  func() uintptr
	optionsDestroy                 func(opts uintptr)
	optionsSetCreateIfMissing      func(opts uintptr, v uint8)
	optionsSetErrorIfExists        func(opts uintptr, v uint8)
	optionsSetParanoidChecks       func(opts uintptr, v uint8)
	optionsSetWriteBufferSize      func(opts uintptr, v uintptr)
	optionsSetMaxOpenFiles         func(opts uintptr, v int32)
	optionsSetBlockSize            func(opts uintptr, v uintptr)
	optionsSetBlockRestartInterval func(opts uintptr, v int32)
	optionsSetCompression          func(opts uintptr, v int32)
	optionsSetCache                func(opts uintptr, cache uintptr)

	cacheCreateLRU func(capacity uintptr) uintptr
	cacheDestroy   func(cache uintptr)

	readOptionsCreate             func() uintptr
	readOptionsDestroy            func(ro uintptr)
	readOptionsSetVerifyChecksums func(ro uintptr, v uint8)
	readOptionsSetFillCache       func(ro uintptr, v uint8)

	writeOptionsCreate  func() uintptr
	writeOptionsDestroy func(wo uintptr)
	writeOptionsSetSync func(wo uintptr, v uint8)

	open   func(opts uintptr, name string, errptr unsafe.Pointer) uintptr
	close  func(db uintptr)
	put    func(db, wo uintptr, key unsafe.Pointer, keylen uintptr, val unsafe.Pointer, vallen uintptr, errptr unsafe.Pointer)
	get    func(db, ro uintptr, key unsafe.Pointer, keylen uintptr, vallen unsafe.Pointer, errptr unsafe.Pointer) unsafe.Pointer
	delete func(db, wo uintptr, key unsafe.Pointer, keylen uintptr, errptr unsafe.Pointer)
	free   func(ptr unsafe.Pointer)

	createIterator  func(db, ro uintptr) uintptr
	iterDestroy     func(it uintptr)
	iterSeekToFirst func(it uintptr)
	iterValid       func(it uintptr) uint8
	iterNext        func(it uintptr)
	iterKey         func(it uintptr, klen unsafe.Pointer) unsafe.Pointer
	iterValue       func(it uintptr, vlen unsafe.Pointer) unsafe.Pointer
	iterGetError    func(it uintptr, errptr unsafe.Pointer)
}

var (
	librariesMu sync.Mutex
	libraries   = map[string]*Library{}
)

// Load opens the named shared library, or the first of
// DefaultLibraryNames that can be opened when name is empty. Loaded
// libraries are cached by name.
func Load(name string) (*Library, error) {
	librariesMu.Lock()
	defer librariesMu.Unlock()

	if lib, ok := libraries[name]; ok {
		return lib, nil
	}

	names := []string{name}
	if name == "" {
		names = DefaultLibraryNames
	}

	var errs []error
	for _, n := range names {
		handle, err := purego.Dlopen(n, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lib := &Library{name: n}
		if err := lib.bind(handle); err != nil {
			return nil, fmt.Errorf("bind %s: %w", n, err)
		}
		log.Engine.Debug().Str("engine", "libleveldb").Str("library", n).Msg("loaded")
		libraries[name] = lib
		return lib, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrLibraryNotFound, errors.Join(errs...))
}

// Name returns the name the library was loaded from.
func (l *Library) Name() string {
	return l.name
}

func (l *Library) bind(handle uintptr) error {
	symbols := []struct {
		fptr any
		name string
	}{
		{&l.optionsCreate, "leveldb_options_create"},
		{&l.optionsDestroy, "leveldb_options_destroy"},
		{&l.optionsSetCreateIfMissing, "leveldb_options_set_create_if_missing"},
		{&l.optionsSetErrorIfExists, "leveldb_options_set_error_if_exists"},
		{&l.optionsSetParanoidChecks, "leveldb_options_set_paranoid_checks"},
		{&l.optionsSetWriteBufferSize, "leveldb_options_set_write_buffer_size"},
		{&l.optionsSetMaxOpenFiles, "leveldb_options_set_max_open_files"},
		{&l.optionsSetBlockSize, "leveldb_options_set_block_size"},
		{&l.optionsSetBlockRestartInterval, "leveldb_options_set_block_restart_interval"},
		{&l.optionsSetCompression, "leveldb_options_set_compression"},
		{&l.optionsSetCache, "leveldb_options_set_cache"},
		{&l.cacheCreateLRU, "leveldb_cache_create_lru"},
		{&l.cacheDestroy, "leveldb_cache_destroy"},
		{&l.readOptionsCreate, "leveldb_readoptions_create"},
		{&l.readOptionsDestroy, "leveldb_readoptions_destroy"},
		{&l.readOptionsSetVerifyChecksums, "leveldb_readoptions_set_verify_checksums"},
		{&l.readOptionsSetFillCache, "leveldb_readoptions_set_fill_cache"},
		{&l.writeOptionsCreate, "leveldb_writeoptions_create"},
		{&l.writeOptionsDestroy, "leveldb_writeoptions_destroy"},
		{&l.writeOptionsSetSync, "leveldb_writeoptions_set_sync"},
		{&l.open, "leveldb_open"},
		{&l.close, "leveldb_close"},
		{&l.put, "leveldb_put"},
		{&l.get, "leveldb_get"},
		{&l.delete, "leveldb_delete"},
		{&l.free, "leveldb_free"},
		{&l.createIterator, "leveldb_create_iterator"},
		{&l.iterDestroy, "leveldb_iter_destroy"},
		{&l.iterSeekToFirst, "leveldb_iter_seek_to_first"},
		{&l.iterValid, "leveldb_iter_valid"},
		{&l.iterNext, "leveldb_iter_next"},
		{&l.iterKey, "leveldb_iter_key"},
		{&l.iterValue, "leveldb_iter_value"},
		{&l.iterGetError, "leveldb_iter_get_error"},
	}

	for _, s := range symbols {
		sym, err := purego.Dlsym(handle, s.name)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMissingSymbol, s.name, err)
		}
		purego.RegisterFunc(s.fptr, sym)
	}
	return nil
}

// takeError converts a C error string set through an errptr argument into
// a Go error and frees it.
func (l *Library) takeError(errp unsafe.Pointer) error {
	if errp == nil {
		return nil
	}
	msg := goString(errp)
	l.free(errp)
	return errors.New(msg)
}

func goString(p unsafe.Pointer) string {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

func goBytes(p unsafe.Pointer, n uintptr) []byte {
	out := make([]byte, n)
	if n > 0 {
		copy(out, unsafe.Slice((*byte)(p), n))
	}
	return out
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func cBool(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
