// Package goleveldb implements db.Engine on top of syndtr/goleveldb, a Go
// port of LevelDB with the same options, comparator and on-disk format.
package goleveldb

import (
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/eigerco/levelbind/pkg/db"
	"github.com/eigerco/levelbind/pkg/log"
)

// KVStore is a db.Engine backed by goleveldb.
type KVStore struct {
	db     *leveldb.DB
	path   string
	closed bool
	mu     sync.RWMutex
}

var _ db.Engine = (*KVStore)(nil)

// Open opens or creates a LevelDB database at path.
func Open(path string, opts db.Options) (db.Engine, error) {
	return NewKVStore(path, opts)
}

func NewKVStore(path string, opts db.Options) (*KVStore, error) {
	ldb, err := leveldb.OpenFile(path, newOptions(opts))
	if err != nil {
		return nil, err
	}

	log.Engine.Debug().Str("engine", "goleveldb").Str("path", path).Msg("opened")
	return &KVStore{db: ldb, path: path}, nil
}

func (s *KVStore) Get(key []byte, opts db.ReadOptions) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}

	// goleveldb already returns a copy owned by the caller
	value, err := s.db.Get(key, readOptions(opts))
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *KVStore) Put(key, value []byte, opts db.WriteOptions) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}

	return s.db.Put(key, value, writeOptions(opts))
}

func (s *KVStore) Delete(key []byte, opts db.WriteOptions) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}

	return s.db.Delete(key, writeOptions(opts))
}

func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	log.Engine.Debug().Str("engine", "goleveldb").Str("path", s.path).Msg("closing")
	return s.db.Close()
}
