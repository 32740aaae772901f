package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/team"
)

// Session is one user's roster under construction.
// All methods are safe for concurrent use.
type Session struct {
	ID      string
	Created time.Time

	mu         sync.Mutex
	roster     *team.Roster
	store      *dataset.Store
	lastActive time.Time
	subs       map[int]chan contracts.TeamSnapshot
	nextSub    int
	closed     bool
	now        func() time.Time
}

func newSession(id, name string, store *dataset.Store, now func() time.Time) *Session {
	t := now()
	return &Session{
		ID:         id,
		Created:    t,
		roster:     team.NewRoster(name),
		store:      store,
		lastActive: t,
		subs:       make(map[int]chan contracts.TeamSnapshot),
		now:        now,
	}
}

// AddPlayer resolves input against the current dataset and adds the player
func (s *Session) AddPlayer(ctx context.Context, input string) (contracts.TeamSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return contracts.TeamSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return contracts.TeamSnapshot{}, ErrSessionClosed
	}

	// capacity is checked before the dataset so a full roster never needs one
	if s.roster.Len() >= team.MaxRosterSize {
		return contracts.TeamSnapshot{}, fmt.Errorf("%w: %d players", ErrRosterFull, team.MaxRosterSize)
	}

	d, err := s.store.Current()
	if err != nil {
		return contracts.TeamSnapshot{}, err
	}

	if _, err := addToRoster(s.roster, d, input); err != nil {
		return contracts.TeamSnapshot{}, err
	}
	return s.mutatedLocked(d.Season()), nil
}

// RemovePlayer drops a member. An exact roster name is tried first, then the
// input is resolved through the dataset the way AddPlayer does.
func (s *Session) RemovePlayer(input string) (contracts.TeamSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return contracts.TeamSnapshot{}, ErrSessionClosed
	}

	name := strings.TrimSpace(input)
	if name == "" {
		return contracts.TeamSnapshot{}, ErrBlankName
	}

	if !s.roster.Has(name) {
		if d, err := s.store.Current(); err == nil {
			if row, ok := d.Lookup(name); ok {
				name = row.Name
			}
		}
	}

	if err := s.roster.Remove(name); err != nil {
		return contracts.TeamSnapshot{}, err
	}
	return s.mutatedLocked(s.seasonLocked()), nil
}

// Clear empties the roster
func (s *Session) Clear() (contracts.TeamSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return contracts.TeamSnapshot{}, ErrSessionClosed
	}

	s.roster.Clear()
	return s.mutatedLocked(s.seasonLocked()), nil
}

// Snapshot returns the current state without marking the session active
func (s *Session) Snapshot() contracts.TeamSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.roster, s.ID, s.seasonLocked())
}

// Subscribe returns a channel that receives the latest snapshot after every
// mutation. Slow readers only see the newest snapshot. Call cancel when done.
func (s *Session) Subscribe() (<-chan contracts.TeamSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan contracts.TeamSnapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- snapshot(s.roster, s.ID, s.seasonLocked())

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// LastActive returns the time of the last mutation
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// close ends every subscription; later mutations fail with ErrSessionClosed
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Session) seasonLocked() string {
	if d, err := s.store.Current(); err == nil {
		return d.Season()
	}
	return ""
}

// mutatedLocked bumps activity, builds the snapshot and fans it out
func (s *Session) mutatedLocked(season string) contracts.TeamSnapshot {
	s.lastActive = s.now()
	snap := snapshot(s.roster, s.ID, season)

	for _, ch := range s.subs {
		// keep only the newest snapshot for slow readers
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
	return snap
}
