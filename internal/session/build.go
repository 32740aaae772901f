package session

import (
	"fmt"
	"strings"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/player"
	"github.com/wonny/rostercast/internal/team"
)

// addToRoster resolves free-text input against d and adds the player.
// Checks run in a fixed order: capacity, blank input, lookup, duplicate.
// It returns the canonical dataset name on success.
func addToRoster(r *team.Roster, d *dataset.Dataset, input string) (string, error) {
	if r.Len() >= team.MaxRosterSize {
		return "", fmt.Errorf("%w: %d players", ErrRosterFull, team.MaxRosterSize)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrBlankName
	}

	row, ok := d.Lookup(input)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlayer, input)
	}

	m, err := player.FromSeason(row)
	if err != nil {
		return "", fmt.Errorf("%s: %w", row.Name, err)
	}

	if err := r.Add(m); err != nil {
		return "", err
	}
	return m.Name, nil
}

// snapshot renders the roster for output consumers
func snapshot(r *team.Roster, id, season string) contracts.TeamSnapshot {
	snap := contracts.TeamSnapshot{
		ID:      id,
		Name:    r.Name,
		Season:  season,
		Size:    r.Len(),
		MaxSize: team.MaxRosterSize,
		Players: r.Names(),
		Record:  r.Record(),
	}

	if r.Len() >= team.MinRosterSize {
		if rates, err := r.Rates(); err == nil {
			snap.Rates = &rates
		}
	}
	return snap
}

// Project builds a throwaway roster from names and returns its snapshot.
// The first failing name aborts the projection.
func Project(d *dataset.Dataset, teamName string, names []string) (contracts.TeamSnapshot, error) {
	r := team.NewRoster(teamName)
	for _, name := range names {
		if _, err := addToRoster(r, d, name); err != nil {
			return contracts.TeamSnapshot{}, err
		}
	}
	return snapshot(r, "", d.Season()), nil
}
