package leveldb

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eigerco/levelbind/pkg/db"
)

// Database is a handle to one open engine. The engine is shared with every
// handle returned by Clone and every Iterator created from any of them, and
// is closed when the last of them is released.
//
// A Database is safe for concurrent use by multiple goroutines.
type Database struct {
	shared   *sharedEngine
	released atomic.Bool
}

// Open opens the database at path. Options are translated before the
// engine is touched, so RawOptions fail without any I/O. Engine failures
// are returned as *OpenError.
func Open(path string, cfg OpenConfig, opts ...Option) (*Database, error) {
	s := newSettings(opts)

	engineOpts, err := TranslateOpen(cfg)
	if err != nil {
		return nil, err
	}

	open, err := s.resolveOpener()
	if err != nil {
		return nil, err
	}

	engine, err := open(path, engineOpts)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Str("engine", string(s.engine)).Msg("open failed")
		return nil, &OpenError{Path: path, Err: err}
	}

	ev := s.logger.Info().Str("path", path).Str("engine", string(s.engine))
	if m, ok := cfg.(zerolog.LogObjectMarshaler); ok {
		ev = ev.Object("options", m)
	}
	ev.Msg("database opened")

	return &Database{shared: newSharedEngine(engine, path, s.logger)}, nil
}

// Path returns the path the database was opened at.
func (d *Database) Path() string {
	return d.shared.path
}

// Clone returns a new handle to the same engine. Both handles must be
// closed.
func (d *Database) Clone() (*Database, error) {
	if d.released.Load() || !d.shared.acquire() {
		return nil, ErrClosed
	}
	return &Database{shared: d.shared}, nil
}

// Iterate returns an Iterator positioned before the first key. The
// iterator keeps the engine open until it is exhausted or closed, even if
// every handle is closed first.
func (d *Database) Iterate(cfg ReadConfig) (*Iterator, error) {
	if d.released.Load() {
		return nil, ErrClosed
	}

	ro, err := TranslateRead(cfg)
	if err != nil {
		return nil, err
	}

	if !d.shared.acquire() {
		return nil, ErrClosed
	}
	source, err := d.shared.engine.NewIterator(ro)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create iterator: %w", err), d.shared.release())
	}

	d.shared.log.Debug().Str("path", d.shared.path).Object("options", readOptionsLog(ro)).Msg("iterator created")
	return newIterator(d.shared, source), nil
}

// Get returns a copy of the value stored under key, or ErrNotFound.
func (d *Database) Get(key []byte, cfg ReadConfig) ([]byte, error) {
	ro, err := TranslateRead(cfg)
	if err != nil {
		return nil, err
	}

	var value []byte
	err = d.withEngine(func(e db.Engine) error {
		var err error
		value, err = e.Get(key, ro)
		return err
	})
	return value, err
}

// Put stores value under key.
func (d *Database) Put(key, value []byte, cfg WriteConfig) error {
	wo, err := TranslateWrite(cfg)
	if err != nil {
		return err
	}
	return d.withEngine(func(e db.Engine) error {
		return e.Put(key, value, wo)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (d *Database) Delete(key []byte, cfg WriteConfig) error {
	wo, err := TranslateWrite(cfg)
	if err != nil {
		return err
	}
	return d.withEngine(func(e db.Engine) error {
		return e.Delete(key, wo)
	})
}

// Close releases this handle. It returns the engine's close error when
// this was the last reference, and nil when it is called again.
func (d *Database) Close() error {
	if !d.released.CompareAndSwap(false, true) {
		return nil
	}
	return d.shared.release()
}

// withEngine holds a reference for the duration of fn so the engine cannot
// be closed underneath it.
func (d *Database) withEngine(fn func(db.Engine) error) error {
	if d.released.Load() || !d.shared.acquire() {
		return ErrClosed
	}
	err := fn(d.shared.engine)
	if releaseErr := d.shared.release(); releaseErr != nil {
		return errors.Join(err, releaseErr)
	}
	return err
}

type readOptionsLog db.ReadOptions

func (o readOptionsLog) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("verify_checksums", o.VerifyChecksums).Bool("fill_cache", o.FillCache)
}
