package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotLoaded is returned by Current before the first successful Reload
var ErrNotLoaded = errors.New("dataset not loaded")

// Store holds the active dataset and swaps it atomically on reload.
// Readers never block; a failed reload keeps the previous dataset.
type Store struct {
	source  Source
	current atomic.Pointer[Dataset]
	loaded  atomic.Int64 // unix nanos of last successful load
	logger  zerolog.Logger
}

// NewStore creates an empty store bound to a source
func NewStore(source Source, logger zerolog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With().Str("component", "dataset.store").Logger(),
	}
}

// NewStaticStore wraps an already-loaded dataset (tests, one-shot CLI runs)
func NewStaticStore(d *Dataset) *Store {
	s := &Store{logger: zerolog.Nop()}
	s.current.Store(d)
	s.loaded.Store(time.Now().UnixNano())
	return s
}

// Reload loads the source and swaps in the new dataset
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	if s.source == nil {
		d, err := s.Current()
		return d, err
	}

	start := time.Now()
	d, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("source", s.source.Describe()).Msg("Dataset reload failed")
		return nil, err
	}

	prev := s.current.Swap(d)
	s.loaded.Store(time.Now().UnixNano())

	ev := s.logger.Info().
		Str("source", s.source.Describe()).
		Str("season", d.Season()).
		Int("players", d.Len()).
		Dur("duration", time.Since(start))
	if prev != nil {
		ev = ev.Int("previous_players", prev.Len())
	}
	ev.Msg("Dataset loaded")

	return d, nil
}

// Current returns the active dataset
func (s *Store) Current() (*Dataset, error) {
	d := s.current.Load()
	if d == nil {
		return nil, ErrNotLoaded
	}
	return d, nil
}

// LoadedAt returns the time of the last successful load (zero if never)
func (s *Store) LoadedAt() time.Time {
	n := s.loaded.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
