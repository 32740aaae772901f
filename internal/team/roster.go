package team

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wonny/rostercast/internal/player"
)

var (
	ErrDuplicatePlayer    = errors.New("player already in team")
	ErrNotFound           = errors.New("player not in team")
	ErrInsufficientRoster = errors.New("not enough players")
)

// Roster is a caller-owned hypothetical team.
// It is not safe for concurrent use; each session owns its own instance.
// The roster never refuses on size: callers enforce MaxRosterSize before Add.
type Roster struct {
	Name    string
	members map[string]*player.Metrics
}

// NewRoster creates an empty roster
func NewRoster(name string) *Roster {
	return &Roster{
		Name:    name,
		members: make(map[string]*player.Metrics),
	}
}

// Add puts p on the roster; names match exactly (case-sensitive)
func (r *Roster) Add(p *player.Metrics) error {
	if p == nil {
		return fmt.Errorf("add player: nil metrics")
	}
	if _, exists := r.members[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
	}
	r.members[p.Name] = p
	return nil
}

// Remove drops the member with exactly this name
func (r *Roster) Remove(name string) error {
	if _, exists := r.members[name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(r.members, name)
	return nil
}

// Clear empties the roster
func (r *Roster) Clear() {
	clear(r.members)
}

// Len returns the number of members
func (r *Roster) Len() int {
	return len(r.members)
}

// Has reports whether a member with exactly this name exists
func (r *Roster) Has(name string) bool {
	_, ok := r.members[name]
	return ok
}

// Players returns the members ordered lexicographically by name
func (r *Roster) Players() []*player.Metrics {
	players := make([]*player.Metrics, 0, len(r.members))
	for _, p := range r.members {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players
}

// Names returns member names in display order
func (r *Roster) Names() []string {
	players := r.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
