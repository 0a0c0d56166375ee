package leveldb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eigerco/levelbind/internal/testutils"
)

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "nil", input: nil},
		{name: "ascii", input: []byte("hello")},
		{name: "zero_bytes", input: []byte{0x00, 'a', 0x00}},
		{name: "invalid_utf8", input: []byte{0xff, 0xfe, 0x80}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := KeyFromBytes(tc.input)
			assert.Equal(t, len(tc.input), key.Len())
			assert.True(t, bytes.Equal(tc.input, key.Bytes()))
		})
	}
}

func TestKeyIsImmutable(t *testing.T) {
	input := []byte("abc")
	key := KeyFromBytes(input)

	input[0] = 'x'
	assert.Equal(t, Key("abc"), key)

	out := key.Bytes()
	out[0] = 'y'
	assert.Equal(t, Key("abc"), key)
}

func TestKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{name: "equal", a: []byte("a"), b: []byte("a"), want: 0},
		{name: "prefix_first", a: []byte("a"), b: []byte("ab"), want: -1},
		{name: "empty_first", a: []byte{}, b: []byte{0x00}, want: -1},
		{name: "unsigned_bytes", a: []byte{0x7f}, b: []byte{0x80}, want: -1},
		{name: "high_byte_last", a: []byte{0xff}, b: []byte("zzz"), want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := KeyFromBytes(tc.a), KeyFromBytes(tc.b)
			assert.Equal(t, tc.want, a.Compare(b))
			assert.Equal(t, -tc.want, b.Compare(a))
			assert.Equal(t, tc.want < 0, a.Less(b))
		})
	}
}

func TestKeyOrderMatchesBytes(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, b := testutils.RandomKey(t, 4), testutils.RandomKey(t, 4)
		assert.Equal(t, bytes.Compare(a, b), KeyFromBytes(a).Compare(KeyFromBytes(b)), "%x vs %x", a, b)
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, `"a\x00b"`, KeyFromBytes([]byte{'a', 0x00, 'b'}).String())
}
