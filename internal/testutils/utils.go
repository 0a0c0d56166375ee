package testutils

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// RandomBytes returns n random bytes.
func RandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// RandomKey returns a random key of up to maxLen bytes. Empty keys and keys
// containing zero bytes are both possible.
func RandomKey(t *testing.T, maxLen int) []byte {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(maxLen)+1))
	require.NoError(t, err)
	return RandomBytes(t, int(n.Int64()))
}

// RandomKeys returns count distinct random keys, each at least one byte
// long, in unspecified order.
func RandomKeys(t *testing.T, count, maxLen int) [][]byte {
	seen := make(map[string]struct{}, count)
	keys := make([][]byte, 0, count)
	for len(keys) < count {
		k := RandomKey(t, maxLen)
		if len(k) == 0 {
			continue
		}
		if _, ok := seen[string(k)]; ok {
			continue
		}
		seen[string(k)] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// SortedCopy returns keys sorted in byte-lexicographic order.
func SortedCopy(keys [][]byte) [][]byte {
	sorted := make([][]byte, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}
