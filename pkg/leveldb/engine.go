package leveldb

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eigerco/levelbind/pkg/db"
	"github.com/eigerco/levelbind/pkg/db/clevel"
	"github.com/eigerco/levelbind/pkg/db/goleveldb"
	"github.com/eigerco/levelbind/pkg/db/pebble"
	"github.com/eigerco/levelbind/pkg/log"
)

// EngineType names a storage engine a database can be opened with.
type EngineType string

const (
	// EngineGoLevelDB is the pure Go LevelDB port.
	EngineGoLevelDB EngineType = "goleveldb"
	// EnginePebble is CockroachDB's LevelDB-inspired engine. It does not
	// read LevelDB's on-disk format.
	EnginePebble EngineType = "pebble"
	// EngineLibLevelDB is the native C library, loaded at runtime.
	EngineLibLevelDB EngineType = "libleveldb"

	DefaultEngine = EngineGoLevelDB
)

// Engines lists every engine type, default first.
var Engines = []EngineType{EngineGoLevelDB, EnginePebble, EngineLibLevelDB}

func ParseEngineType(s string) (EngineType, error) {
	if s == "" {
		return DefaultEngine, nil
	}
	for _, e := range Engines {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}

func (e EngineType) opener(library string) (db.Opener, error) {
	switch e {
	case EngineGoLevelDB, "":
		return goleveldb.Open, nil
	case EnginePebble:
		return pebble.Open, nil
	case EngineLibLevelDB:
		return clevel.Opener(library), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, string(e))
	}
}

type settings struct {
	engine  EngineType
	library string
	opener  db.Opener
	logger  zerolog.Logger
}

// Option configures how Open reaches the engine.
type Option func(*settings)

// WithEngine selects the engine. The default is DefaultEngine.
func WithEngine(e EngineType) Option {
	return func(s *settings) { s.engine = e }
}

// WithLibrary names the shared library EngineLibLevelDB loads. By default
// the names in clevel.DefaultLibraryNames are tried.
func WithLibrary(name string) Option {
	return func(s *settings) { s.library = name }
}

// WithOpener opens the database with a custom engine, overriding
// WithEngine.
func WithOpener(o db.Opener) Option {
	return func(s *settings) { s.opener = o }
}

// WithLogger replaces the package's binding logger for this database.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func newSettings(opts []Option) settings {
	s := settings{engine: DefaultEngine, logger: log.Binding}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) resolveOpener() (db.Opener, error) {
	if s.opener != nil {
		return s.opener, nil
	}
	return s.engine.opener(s.library)
}
