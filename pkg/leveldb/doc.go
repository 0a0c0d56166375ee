// Package leveldb binds an ordered key-value storage engine to callers whose
// object lifetimes are not tied to the engine handle.
//
// A Database owns one open engine under shared, reference-counted
// ownership. Every Iterator derived from it holds its own reference, so the
// engine stays open until the handle and all outstanding iterators have
// been released, in any order:
//
//	database, err := leveldb.Open("/path/to/db", leveldb.NewOpenOptions(
//		leveldb.WithCreateIfMissing(true),
//	))
//	if err != nil {
//		return err
//	}
//
//	it, err := database.Iterate(leveldb.NewReadOptions())
//	if err != nil {
//		return err
//	}
//	// The engine stays open: the iterator still holds a reference.
//	database.Close()
//
//	for key, value := range it.All() {
//		fmt.Printf("%s = %q\n", key, value)
//	}
//	return it.Err()
//
// Options are accepted either as typed records (OpenOptions, ReadOptions,
// WriteOptions) or as RawOptions. Only the typed form is translated; a raw
// mapping fails with ErrRawOptionsNotImplemented.
package leveldb
