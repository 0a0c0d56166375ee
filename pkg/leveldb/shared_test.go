package leveldb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/levelbind/pkg/db"
)

func TestSharedOwnership(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, engine *EngineMock, database *Database)
	}{
		{
			name: "close_without_cursors",
			fn:   testCloseWithoutCursors,
		},
		{
			name: "cursor_outlives_handle",
			fn:   testCursorOutlivesHandle,
		},
		{
			name: "last_of_many_releases_closes",
			fn:   testLastOfManyReleasesCloses,
		},
		{
			name: "clone_shares_engine",
			fn:   testCloneSharesEngine,
		},
		{
			name: "closed_handle_refuses_work",
			fn:   testClosedHandleRefusesWork,
		},
		{
			name: "iterator_creation_failure",
			fn:   testIteratorCreationFailure,
		},
		{
			name: "engine_error_mid_iteration",
			fn:   testEngineErrorMidIteration,
		},
		{
			name: "close_error_reported_once",
			fn:   testCloseErrorReportedOnce,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := &EngineMock{}
			database, err := Open("mock", nil, WithOpener(engine.opener()))
			require.NoError(t, err)

			tc.fn(t, engine, database)
			engine.AssertExpectations(t)
		})
	}
}

func testCloseWithoutCursors(t *testing.T, engine *EngineMock, database *Database) {
	engine.On("Close").Return(nil).Once()

	require.NoError(t, database.Close())
	assert.Equal(t, int64(0), database.shared.refCount())

	// Double close should not error or close the engine again
	assert.NoError(t, database.Close())
}

func testCursorOutlivesHandle(t *testing.T, engine *EngineMock, database *Database) {
	source := newSliceIterator("a", "1", "b", "2")
	engine.On("NewIterator", db.ReadOptions{FillCache: true}).Return(source, nil).Once()

	it, err := database.Iterate(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), database.shared.refCount())

	require.NoError(t, database.Close())
	engine.AssertNotCalled(t, "Close")
	assert.Equal(t, int64(1), database.shared.refCount())

	key, value, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, Key("a"), key)
	assert.Equal(t, []byte("1"), value)

	key, _, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, Key("b"), key)
	engine.AssertNotCalled(t, "Close")

	// Exhaustion drops the last reference and closes the engine right away
	engine.On("Close").Return(nil).Once()
	_, _, ok = it.Next()
	assert.False(t, ok)
	assert.Equal(t, int64(0), database.shared.refCount())
	assert.Equal(t, 1, source.closed)

	assert.NoError(t, it.Close())
	assert.NoError(t, it.Err())
}

func testLastOfManyReleasesCloses(t *testing.T, engine *EngineMock, database *Database) {
	first := newSliceIterator("k", "v")
	second := newSliceIterator("k", "v")
	engine.On("NewIterator", mock.Anything).Return(first, nil).Once()
	engine.On("NewIterator", mock.Anything).Return(second, nil).Once()

	it1, err := database.Iterate(NewReadOptions())
	require.NoError(t, err)
	it2, err := database.Iterate(NewReadOptions(WithVerifyChecksums(true)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), database.shared.refCount())

	require.NoError(t, it1.Close())
	require.NoError(t, database.Close())
	engine.AssertNotCalled(t, "Close")

	engine.On("Close").Return(nil).Once()
	require.NoError(t, it2.Close())
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)
}

func testCloneSharesEngine(t *testing.T, engine *EngineMock, database *Database) {
	clone, err := database.Clone()
	require.NoError(t, err)
	assert.Equal(t, int64(2), database.shared.refCount())

	require.NoError(t, database.Close())
	engine.AssertNotCalled(t, "Close")

	engine.On("Put", []byte("k"), []byte("v"), db.WriteOptions{Sync: true}).Return(nil).Once()
	require.NoError(t, clone.Put([]byte("k"), []byte("v"), NewWriteOptions(WithSync(true))))

	_, err = database.Clone()
	assert.ErrorIs(t, err, ErrClosed)

	engine.On("Close").Return(nil).Once()
	require.NoError(t, clone.Close())
}

func testClosedHandleRefusesWork(t *testing.T, engine *EngineMock, database *Database) {
	engine.On("Close").Return(nil).Once()
	require.NoError(t, database.Close())

	_, err := database.Iterate(nil)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = database.Get([]byte("k"), nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, database.Put([]byte("k"), nil, nil), ErrClosed)
	assert.ErrorIs(t, database.Delete([]byte("k"), nil), ErrClosed)
}

func testIteratorCreationFailure(t *testing.T, engine *EngineMock, database *Database) {
	boom := errors.New("boom")
	engine.On("NewIterator", mock.Anything).Return(nil, boom).Once()

	_, err := database.Iterate(nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), database.shared.refCount())

	engine.On("Close").Return(nil).Once()
	require.NoError(t, database.Close())
}

func testEngineErrorMidIteration(t *testing.T, engine *EngineMock, database *Database) {
	corrupt := errors.New("corruption: block checksum mismatch")
	source := newSliceIterator("a", "1", "b", "2", "c", "3").failingAfter(1, corrupt)
	engine.On("NewIterator", mock.Anything).Return(source, nil).Once()

	it, err := database.Iterate(NewReadOptions(WithVerifyChecksums(true)))
	require.NoError(t, err)

	_, _, ok := it.Next()
	require.True(t, ok)
	_, _, ok = it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), corrupt)
	assert.Equal(t, int64(1), database.shared.refCount())

	// Still terminal, never a spurious entry
	_, _, ok = it.Next()
	assert.False(t, ok)

	engine.On("Close").Return(nil).Once()
	require.NoError(t, database.Close())
}

func testCloseErrorReportedOnce(t *testing.T, engine *EngineMock, database *Database) {
	closeErr := errors.New("flush failed")
	engine.On("NewIterator", mock.Anything).Return(newSliceIterator(), nil).Once()
	engine.On("Close").Return(closeErr).Once()

	it, err := database.Iterate(nil)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// The iterator held the last reference, so it sees the close error
	assert.ErrorIs(t, it.Close(), closeErr)
	assert.NoError(t, it.Close())
}
