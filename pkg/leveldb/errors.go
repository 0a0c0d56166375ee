package leveldb

import (
	"errors"

	"github.com/eigerco/levelbind/pkg/db"
)

var (
	// ErrRawOptionsNotImplemented is returned whenever RawOptions are
	// passed where options are translated. Raw mappings are an accepted
	// input shape but have no translation yet.
	ErrRawOptionsNotImplemented = errors.New("raw options are not implemented yet")

	ErrUnknownEngine = errors.New("unknown engine")

	ErrClosed   = db.ErrClosed
	ErrNotFound = db.ErrNotFound
)

// OpenError is returned by Open when the engine fails to open the
// database. Err carries the engine's own diagnostic.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "unable to open database: " + e.Err.Error()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
