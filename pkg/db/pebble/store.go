package pebble

import (
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/levelbind/pkg/db"
	"github.com/eigerco/levelbind/pkg/log"
)

// KVStore is a db.Engine backed by pebble.
type KVStore struct {
	db     *pebble.DB
	path   string
	closed bool
	mu     sync.RWMutex
}

var _ db.Engine = (*KVStore)(nil)

// Open opens or creates a pebble database at path.
func Open(path string, opts db.Options) (db.Engine, error) {
	return NewKVStore(path, opts)
}

// NewKVStore opens a pebble database at path with the given engine options.
func NewKVStore(path string, opts db.Options) (*KVStore, error) {
	pebbleOpts := newOptions(opts)
	if pebbleOpts.Cache != nil {
		// pebble.Open takes its own reference on the cache.
		defer pebbleOpts.Cache.Unref()
	}

	if opts.ParanoidChecks {
		log.Engine.Debug().Str("engine", "pebble").Str("path", path).
			Msg("paranoid checks requested; pebble always verifies block checksums")
	}

	pdb, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, err
	}

	log.Engine.Debug().Str("engine", "pebble").Str("path", path).Msg("opened")
	return &KVStore{db: pdb, path: path}, nil
}

func (p *KVStore) Get(key []byte, _ db.ReadOptions) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, db.ErrClosed
	}

	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *KVStore) Put(key, value []byte, opts db.WriteOptions) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return db.ErrClosed
	}

	return p.db.Set(key, value, writeOptions(opts))
}

func (p *KVStore) Delete(key []byte, opts db.WriteOptions) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return db.ErrClosed
	}

	return p.db.Delete(key, writeOptions(opts))
}

func (p *KVStore) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	log.Engine.Debug().Str("engine", "pebble").Str("path", p.path).Msg("closing")
	return p.db.Close()
}
