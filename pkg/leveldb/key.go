package leveldb

import (
	"strconv"
	"strings"
)

// Key is an exact, immutable byte sequence. Keys compare by unsigned
// byte-lexicographic order with a shorter prefix sorting first, the same
// order every bundled engine stores them in. No normalization or encoding
// validation is applied.
type Key string

// KeyFromBytes returns a Key holding a copy of b.
func KeyFromBytes(b []byte) Key {
	return Key(b)
}

// Bytes returns a copy of the key's bytes.
func (k Key) Bytes() []byte {
	return []byte(k)
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, equal
// to or after other.
func (k Key) Compare(other Key) int {
	return strings.Compare(string(k), string(other))
}

func (k Key) Less(other Key) bool {
	return k < other
}

func (k Key) Len() int {
	return len(k)
}

// String returns the key as a quoted Go string literal.
func (k Key) String() string {
	return strconv.Quote(string(k))
}
