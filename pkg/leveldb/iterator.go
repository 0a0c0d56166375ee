package leveldb

import (
	"errors"
	"iter"
	"sync/atomic"

	"github.com/eigerco/levelbind/pkg/db"
)

type iteratorState uint8

const (
	positioned iteratorState = iota
	exhausted
)

// Iterator walks every key-value pair of a database once, in key order.
// It is forward-only: there is no seek, previous or reset.
//
// An Iterator holds its own reference to the engine, so it keeps working
// after the Database it came from is closed. The reference is dropped as
// soon as the iterator is exhausted or closed.
//
// An Iterator has a single owner. Calling Next or Close from two
// goroutines at once panics.
type Iterator struct {
	shared *sharedEngine
	source db.Iterator
	state  iteratorState
	err    error
	busy   atomic.Bool
}

func newIterator(shared *sharedEngine, source db.Iterator) *Iterator {
	return &Iterator{shared: shared, source: source, state: positioned}
}

// Next returns the current pair and advances past it. At the end of the
// keyspace it returns false, and keeps returning false on every later
// call. An engine error also ends the iteration; Err reports it.
func (it *Iterator) Next() (Key, []byte, bool) {
	it.enter()
	defer it.leave()

	if it.state == exhausted {
		return "", nil, false
	}

	if !it.source.Next() {
		it.finish(it.source.Error())
		return "", nil, false
	}

	key := KeyFromBytes(it.source.Key())
	value, err := it.source.Value()
	if err != nil {
		it.finish(err)
		return "", nil, false
	}
	return key, value, true
}

// All returns the remaining pairs as a sequence for range loops. Breaking
// out of the loop leaves the iterator open at the following pair.
func (it *Iterator) All() iter.Seq2[Key, []byte] {
	return func(yield func(Key, []byte) bool) {
		for {
			key, value, ok := it.Next()
			if !ok || !yield(key, value) {
				return
			}
		}
	}
}

// Err returns the error that ended the iteration early, if any.
// Reaching the end of the keyspace is not an error.
func (it *Iterator) Err() error {
	return it.err
}

// Close releases the iterator and its engine reference. Closing an
// exhausted or already closed iterator is a no-op.
func (it *Iterator) Close() error {
	it.enter()
	defer it.leave()

	if it.state == exhausted {
		return nil
	}
	it.finish(nil)
	return it.err
}

// finish moves to the terminal state and drops the engine reference.
func (it *Iterator) finish(cause error) {
	it.state = exhausted

	closeErr := it.source.Close()
	if cause == nil {
		cause = closeErr
	}
	it.source = nil

	releaseErr := it.shared.release()
	it.err = errors.Join(cause, releaseErr)
	it.shared.log.Debug().Str("path", it.shared.path).Msg("iterator released")
}

func (it *Iterator) enter() {
	if !it.busy.CompareAndSwap(false, true) {
		panic("leveldb: concurrent use of Iterator")
	}
}

func (it *Iterator) leave() {
	it.busy.Store(false)
}
