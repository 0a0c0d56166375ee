package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/levelbind/pkg/db"
)

// RunEngineSuite runs the behaviour every db.Engine implementation shares
// against engines produced by open.
func RunEngineSuite(t *testing.T, open db.Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, open db.Opener)
	}{
		{
			name: "basic_put_get",
			fn:   testBasicPutGet,
		},
		{
			name: "delete_operations",
			fn:   testDelete,
		},
		{
			name: "store_closure",
			fn:   testStoreClosure,
		},
		{
			name: "missing_without_create",
			fn:   testMissingWithoutCreate,
		},
		{
			name: "error_if_exists",
			fn:   testErrorIfExists,
		},
		{
			name: "reopen_persists",
			fn:   testReopenPersists,
		},
		{
			name: "full_range_iteration",
			fn:   testFullRangeIteration,
		},
		{
			name: "iterator_validity",
			fn:   testIteratorValidity,
		},
		{
			name: "iterator_exhaustion",
			fn:   testIteratorExhaustion,
		},
		{
			name: "tuned_options",
			fn:   testTunedOptions,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, open)
		})
	}
}

func createEngine(t *testing.T, open db.Opener) db.Engine {
	store, err := open(t.TempDir(), db.Options{CreateIfMissing: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testBasicPutGet(t *testing.T, open db.Opener) {
	store := createEngine(t, open)

	key := []byte("test-key")
	value := []byte("test-value")

	err := store.Put(key, value, db.WriteOptions{})
	require.NoError(t, err)

	retrieved, err := store.Get(key, db.ReadOptions{FillCache: true})
	require.NoError(t, err)
	assert.Equal(t, value, retrieved)

	// Keys are exact bytes
	binKey := []byte{0x00, 'k', 0x00, 0xff}
	require.NoError(t, store.Put(binKey, []byte{}, db.WriteOptions{Sync: true}))
	retrieved, err = store.Get(binKey, db.ReadOptions{})
	require.NoError(t, err)
	assert.Empty(t, retrieved)

	// Test non-existent key
	_, err = store.Get([]byte("non-existent"), db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func testDelete(t *testing.T, open db.Opener) {
	store := createEngine(t, open)

	key := []byte("delete-test")
	value := []byte("to-be-deleted")

	err := store.Put(key, value, db.WriteOptions{})
	require.NoError(t, err)

	err = store.Delete(key, db.WriteOptions{Sync: true})
	require.NoError(t, err)

	_, err = store.Get(key, db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrNotFound)

	// Delete non-existent key should not error
	err = store.Delete([]byte("non-existent"), db.WriteOptions{})
	assert.NoError(t, err)
}

func testStoreClosure(t *testing.T, open db.Opener) {
	store := createEngine(t, open)

	err := store.Close()
	require.NoError(t, err)

	// Test operations after close
	_, err = store.Get([]byte("key"), db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrClosed)

	err = store.Put([]byte("key"), []byte("value"), db.WriteOptions{})
	assert.ErrorIs(t, err, db.ErrClosed)

	err = store.Delete([]byte("key"), db.WriteOptions{})
	assert.ErrorIs(t, err, db.ErrClosed)

	_, err = store.NewIterator(db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrClosed)

	// Double close should not error
	err = store.Close()
	assert.NoError(t, err)
}

func testMissingWithoutCreate(t *testing.T, open db.Opener) {
	_, err := open(t.TempDir()+"/missing", db.Options{})
	assert.Error(t, err)
}

func testErrorIfExists(t *testing.T, open db.Opener) {
	path := t.TempDir()

	store, err := open(path, db.Options{CreateIfMissing: true})
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("k"), []byte("v"), db.WriteOptions{Sync: true}))
	require.NoError(t, store.Close())

	_, err = open(path, db.Options{CreateIfMissing: true, ErrorIfExists: true})
	require.Error(t, err)

	// The failed open leaves the existing database untouched
	store, err = open(path, db.Options{})
	require.NoError(t, err)
	defer store.Close()

	value, err := store.Get([]byte("k"), db.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func testReopenPersists(t *testing.T, open db.Opener) {
	path := t.TempDir()

	store, err := open(path, db.Options{CreateIfMissing: true})
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("persist"), []byte("me"), db.WriteOptions{Sync: true}))
	require.NoError(t, store.Close())

	store, err = open(path, db.Options{})
	require.NoError(t, err)
	defer store.Close()

	value, err := store.Get([]byte("persist"), db.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("me"), value)
}

func testFullRangeIteration(t *testing.T, open db.Opener) {
	store := createEngine(t, open)

	keys := RandomKeys(t, 64, 12)
	for _, k := range keys {
		require.NoError(t, store.Put(k, append([]byte("v-"), k...), db.WriteOptions{}))
	}

	iter, err := store.NewIterator(db.ReadOptions{VerifyChecksums: true, FillCache: true})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	var got [][]byte
	for iter.Next() {
		value, err := iter.Value()
		require.NoError(t, err)
		assert.Equal(t, append([]byte("v-"), iter.Key()...), value)
		got = append(got, iter.Key())
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, SortedCopy(keys), got)
}

func testIteratorValidity(t *testing.T, open db.Opener) {
	store := createEngine(t, open)

	// Prepare a few key-value pairs to ensure proper iteration
	testData := map[string]string{
		"key1": "value1",
		"key2": "value2",
	}

	for k, v := range testData {
		err := store.Put([]byte(k), []byte(v), db.WriteOptions{})
		require.NoError(t, err)
	}

	iter, err := store.NewIterator(db.ReadOptions{FillCache: true})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	// Initial state - iterator is not positioned
	assert.False(t, iter.Valid())

	// First Next() should position at first element
	assert.True(t, iter.Next())
	assert.True(t, iter.Valid())
	assert.Equal(t, []byte("key1"), iter.Key())

	val, err := iter.Value()
	require.NoError(t, err)
	assert.Equal(t, "value1", string(val))

	assert.True(t, iter.Next())
	assert.Equal(t, []byte("key2"), iter.Key())

	// No more elements
	assert.False(t, iter.Next())
	assert.False(t, iter.Valid())

	// Value() should error when invalid
	_, err = iter.Value()
	assert.ErrorIs(t, err, db.ErrIteratorInvalid)
}

func testIteratorExhaustion(t *testing.T, open db.Opener) {
	store := createEngine(t, open)
	require.NoError(t, store.Put([]byte("only"), []byte("one"), db.WriteOptions{}))

	iter, err := store.NewIterator(db.ReadOptions{})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	assert.True(t, iter.Next())
	for range 3 {
		assert.False(t, iter.Next())
		assert.False(t, iter.Valid())
	}
	assert.NoError(t, iter.Error())
}

func testTunedOptions(t *testing.T, open db.Opener) {
	store, err := open(t.TempDir(), db.Options{
		CreateIfMissing:      true,
		ParanoidChecks:       true,
		WriteBufferSize:      1 << 20,
		MaxOpenFiles:         64,
		BlockSize:            8 << 10,
		BlockRestartInterval: 8,
		Compression:          db.SnappyCompression,
		Cache:                db.NewCache(4 << 20),
	})
	require.NoError(t, err)
	defer store.Close()

	for i := range 100 {
		key := []byte{byte(i)}
		require.NoError(t, store.Put(key, RandomBytes(t, 128), db.WriteOptions{}))
	}

	iter, err := store.NewIterator(db.ReadOptions{VerifyChecksums: true})
	require.NoError(t, err)
	count := 0
	for iter.Next() {
		assert.Equal(t, []byte{byte(count)}, iter.Key())
		count++
	}
	require.NoError(t, iter.Close())
	assert.Equal(t, 100, count)
}
