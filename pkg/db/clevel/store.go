//go:build darwin || freebsd || linux

package clevel

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/eigerco/levelbind/pkg/db"
	"github.com/eigerco/levelbind/pkg/log"
)

// C compression selectors from leveldb/c.h.
const (
	cNoCompression     = 0
	cSnappyCompression = 1
)

// KVStore is a db.Engine backed by a native leveldb_t.
type KVStore struct {
	lib    *Library
	db     uintptr
	cache  uintptr
	path   string
	closed bool
	mu     sync.RWMutex
}

var _ db.Engine = (*KVStore)(nil)

// Open opens a database at path with the first library found in
// DefaultLibraryNames.
func Open(path string, opts db.Options) (db.Engine, error) {
	lib, err := Load("")
	if err != nil {
		return nil, err
	}
	return lib.Open(path, opts)
}

// Opener returns a db.Opener bound to the named library.
func Opener(name string) db.Opener {
	return func(path string, opts db.Options) (db.Engine, error) {
		lib, err := Load(name)
		if err != nil {
			return nil, err
		}
		return lib.Open(path, opts)
	}
}

// Open opens a database at path.
func (l *Library) Open(path string, opts db.Options) (db.Engine, error) {
	copts := l.newOptions(opts)
	defer l.optionsDestroy(copts.ptr)

	var errp unsafe.Pointer
	handle := l.open(copts.ptr, path, unsafe.Pointer(&errp))
	if err := l.takeError(errp); err != nil {
		if copts.cache != 0 {
			l.cacheDestroy(copts.cache)
		}
		return nil, err
	}

	log.Engine.Debug().Str("engine", "libleveldb").Str("path", path).Msg("opened")
	return &KVStore{lib: l, db: handle, cache: copts.cache, path: path}, nil
}

func (s *KVStore) Get(key []byte, opts db.ReadOptions) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}

	ro := s.lib.newReadOptions(opts)
	defer s.lib.readOptionsDestroy(ro)

	var (
		vallen uintptr
		errp   unsafe.Pointer
	)
	val := s.lib.get(s.db, ro, bytesPtr(key), uintptr(len(key)), unsafe.Pointer(&vallen), unsafe.Pointer(&errp))
	runtime.KeepAlive(key)
	if err := s.lib.takeError(errp); err != nil {
		return nil, err
	}
	if val == nil {
		return nil, db.ErrNotFound
	}
	defer s.lib.free(val)
	return goBytes(val, vallen), nil
}

func (s *KVStore) Put(key, value []byte, opts db.WriteOptions) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}

	wo := s.lib.newWriteOptions(opts)
	defer s.lib.writeOptionsDestroy(wo)

	var errp unsafe.Pointer
	s.lib.put(s.db, wo, bytesPtr(key), uintptr(len(key)), bytesPtr(value), uintptr(len(value)), unsafe.Pointer(&errp))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return s.lib.takeError(errp)
}

func (s *KVStore) Delete(key []byte, opts db.WriteOptions) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}

	wo := s.lib.newWriteOptions(opts)
	defer s.lib.writeOptionsDestroy(wo)

	var errp unsafe.Pointer
	s.lib.delete(s.db, wo, bytesPtr(key), uintptr(len(key)), unsafe.Pointer(&errp))
	runtime.KeepAlive(key)
	return s.lib.takeError(errp)
}

func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	log.Engine.Debug().Str("engine", "libleveldb").Str("path", s.path).Msg("closing")

	s.lib.close(s.db)
	// The cache must outlive the database that uses it
	if s.cache != 0 {
		s.lib.cacheDestroy(s.cache)
	}
	return nil
}
