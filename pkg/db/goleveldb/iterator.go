package goleveldb

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"

	"github.com/eigerco/levelbind/pkg/db"
)

type Iterator struct {
	iter     iterator.Iterator
	released bool
	err      error
}

func (s *KVStore) NewIterator(opts db.ReadOptions) (db.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}

	return &Iterator{iter: s.db.NewIterator(nil, readOptions(opts))}, nil
}

// Next moves to the following pair. On a fresh iterator goleveldb treats
// Next as First.
func (it *Iterator) Next() bool {
	if it.released {
		return false
	}
	return it.iter.Next()
}

func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	key := it.iter.Key()
	result := make([]byte, len(key))
	copy(result, key)
	return result
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, db.ErrIteratorInvalid
	}
	val := it.iter.Value()
	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

func (it *Iterator) Valid() bool {
	return !it.released && it.iter.Valid()
}

func (it *Iterator) Error() error {
	if it.released {
		return it.err
	}
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	if it.released {
		return nil
	}
	it.released = true
	it.err = it.iter.Error()
	it.iter.Release()
	return it.err
}
