package leveldb

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eigerco/levelbind/pkg/db"
)

// sharedEngine is an engine owned jointly by every Database handle and
// Iterator derived from one Open call. Each owner holds one reference; the
// release that drops the count to zero closes the engine, inside that call.
type sharedEngine struct {
	engine db.Engine
	path   string
	refs   atomic.Int64
	log    zerolog.Logger
}

func newSharedEngine(engine db.Engine, path string, logger zerolog.Logger) *sharedEngine {
	s := &sharedEngine{engine: engine, path: path, log: logger}
	s.refs.Store(1)
	return s
}

// acquire adds a reference. It fails once the engine has been closed, so a
// closed engine can never be revived.
func (s *sharedEngine) acquire() bool {
	for {
		n := s.refs.Load()
		if n <= 0 {
			return false
		}
		if s.refs.CompareAndSwap(n, n+1) {
			s.log.Debug().Str("path", s.path).Int64("refs", n+1).Msg("reference acquired")
			return true
		}
	}
}

// release drops a reference and closes the engine when it was the last.
func (s *sharedEngine) release() error {
	n := s.refs.Add(-1)
	switch {
	case n > 0:
		s.log.Debug().Str("path", s.path).Int64("refs", n).Msg("reference released")
		return nil
	case n == 0:
		err := s.engine.Close()
		if err != nil {
			s.log.Error().Err(err).Str("path", s.path).Msg("closing database failed")
			return err
		}
		s.log.Info().Str("path", s.path).Msg("database closed")
		return nil
	default:
		panic("leveldb: shared engine released more times than acquired")
	}
}

func (s *sharedEngine) refCount() int64 {
	return s.refs.Load()
}
