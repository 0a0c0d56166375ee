package clevel

import "errors"

var (
	ErrLibraryNotFound     = errors.New("libleveldb: shared library not found")
	ErrMissingSymbol       = errors.New("libleveldb: missing symbol")
	ErrUnsupportedPlatform = errors.New("libleveldb: dynamic loading is not supported on this platform")
)
