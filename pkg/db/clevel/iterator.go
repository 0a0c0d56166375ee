//go:build darwin || freebsd || linux

package clevel

import (
	"unsafe"

	"github.com/eigerco/levelbind/pkg/db"
)

type Iterator struct {
	lib     *Library
	it      uintptr
	ro      uintptr
	started bool
	done    bool
	closed  bool
	err     error
}

func (s *KVStore) NewIterator(opts db.ReadOptions) (db.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}

	ro := s.lib.newReadOptions(opts)
	return &Iterator{lib: s.lib, it: s.lib.createIterator(s.db, ro), ro: ro}, nil
}

func (it *Iterator) Next() bool {
	if it.done || it.closed {
		return false
	}
	if !it.started {
		it.started = true
		it.lib.iterSeekToFirst(it.it)
	} else {
		it.lib.iterNext(it.it)
	}
	if it.lib.iterValid(it.it) == 0 {
		it.done = true
		it.err = it.iterError()
		return false
	}
	return true
}

func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	var n uintptr
	p := it.lib.iterKey(it.it, unsafe.Pointer(&n))
	return goBytes(p, n)
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, db.ErrIteratorInvalid
	}
	var n uintptr
	p := it.lib.iterValue(it.it, unsafe.Pointer(&n))
	return goBytes(p, n), nil
}

func (it *Iterator) Valid() bool {
	return it.started && !it.done && !it.closed
}

func (it *Iterator) Error() error {
	return it.err
}

func (it *Iterator) Close() error {
	if it.closed {
		return nil
	}
	if it.err == nil {
		it.err = it.iterError()
	}
	it.closed = true
	it.lib.iterDestroy(it.it)
	it.lib.readOptionsDestroy(it.ro)
	return it.err
}

func (it *Iterator) iterError() error {
	var errp unsafe.Pointer
	it.lib.iterGetError(it.it, unsafe.Pointer(&errp))
	return it.lib.takeError(errp)
}
