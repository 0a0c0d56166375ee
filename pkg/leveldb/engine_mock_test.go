package leveldb

import (
	"github.com/stretchr/testify/mock"

	"github.com/eigerco/levelbind/pkg/db"
)

type EngineMock struct {
	mock.Mock
}

func (m *EngineMock) Get(key []byte, opts db.ReadOptions) ([]byte, error) {
	args := m.MethodCalled("Get", key, opts)
	value, _ := args.Get(0).([]byte)
	return value, args.Error(1)
}

func (m *EngineMock) Put(key, value []byte, opts db.WriteOptions) error {
	return m.MethodCalled("Put", key, value, opts).Error(0)
}

func (m *EngineMock) Delete(key []byte, opts db.WriteOptions) error {
	return m.MethodCalled("Delete", key, opts).Error(0)
}

func (m *EngineMock) NewIterator(opts db.ReadOptions) (db.Iterator, error) {
	args := m.MethodCalled("NewIterator", opts)
	it, _ := args.Get(0).(db.Iterator)
	return it, args.Error(1)
}

func (m *EngineMock) Close() error {
	return m.MethodCalled("Close").Error(0)
}

func (m *EngineMock) opener() db.Opener {
	return func(string, db.Options) (db.Engine, error) {
		return m, nil
	}
}

// sliceIterator is a db.Iterator over fixed pairs that can fail after a
// given number of pairs.
type sliceIterator struct {
	keys, values [][]byte
	pos          int
	failAfter    int
	failErr      error
	err          error
	closed       int
}

func newSliceIterator(pairs ...string) *sliceIterator {
	it := &sliceIterator{pos: -1, failAfter: -1}
	for i := 0; i+1 < len(pairs); i += 2 {
		it.keys = append(it.keys, []byte(pairs[i]))
		it.values = append(it.values, []byte(pairs[i+1]))
	}
	return it
}

func (it *sliceIterator) failingAfter(n int, err error) *sliceIterator {
	it.failAfter = n
	it.failErr = err
	return it
}

func (it *sliceIterator) Next() bool {
	if it.closed > 0 || it.err != nil || it.pos >= len(it.keys) {
		return false
	}
	it.pos++
	if it.failAfter >= 0 && it.pos >= it.failAfter {
		it.err = it.failErr
		return false
	}
	return it.pos < len(it.keys)
}

func (it *sliceIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return append([]byte(nil), it.keys[it.pos]...)
}

func (it *sliceIterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, db.ErrIteratorInvalid
	}
	return append([]byte(nil), it.values[it.pos]...), nil
}

func (it *sliceIterator) Valid() bool {
	return it.closed == 0 && it.err == nil && it.pos >= 0 && it.pos < len(it.keys)
}

func (it *sliceIterator) Error() error {
	return it.err
}

func (it *sliceIterator) Close() error {
	it.closed++
	return it.err
}
