package db

// Engine represents an ordered key-value storage engine. Keys are ordered
// by unsigned byte-lexicographic comparison. Implementations are safe for
// concurrent use, but Close must not be called while iterators created by
// NewIterator are still open.
type Engine interface {
	Writer
	Get(key []byte, opts ReadOptions) ([]byte, error)
	Delete(key []byte, opts WriteOptions) error
	NewIterator(opts ReadOptions) (Iterator, error)
	Close() error
}

type Writer interface {
	Put(key []byte, value []byte, opts WriteOptions) error
}

// Iterator provides forward-only sequential access over every key-value
// pair of an engine. A new iterator is positioned before the first pair;
// the first call to Next moves it onto the first pair. Once Next has
// returned false it keeps returning false.
// Iterators must be closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Error() error
	Close() error
}

// Opener opens an engine at path.
type Opener func(path string, opts Options) (Engine, error)
