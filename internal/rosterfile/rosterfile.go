package rosterfile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/team"
)

// Roster is a hypothetical team described in YAML:
//
//	team: Splash Brothers
//	season: 2015-16
//	players:
//	  - Stephen Curry
//	  - Klay Thompson
type Roster struct {
	Team    string   `yaml:"team"`
	Season  string   `yaml:"season,omitempty"`
	Players []string `yaml:"players"`
}

// ValidationError names the offending field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a roster file
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes YAML; unknown fields fail immediately
func Parse(data []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}

	r.Team = strings.TrimSpace(r.Team)
	r.Season = strings.TrimSpace(r.Season)
	for i, p := range r.Players {
		r.Players[i] = strings.TrimSpace(p)
	}

	if err := Validate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks size bounds, blank entries and duplicates. Two entries are
// duplicates when they resolve to the same dataset key.
func Validate(r *Roster) error {
	if len(r.Players) == 0 {
		return ValidationError{"players", "at least one player is required"}
	}
	if len(r.Players) > team.MaxRosterSize {
		return ValidationError{"players", fmt.Sprintf("at most %d players allowed, got %d", team.MaxRosterSize, len(r.Players))}
	}

	seen := make(map[string]int, len(r.Players))
	for i, p := range r.Players {
		field := fmt.Sprintf("players[%d]", i)
		key := dataset.NormalizeName(p)
		if key == "" {
			return ValidationError{field, "name is blank"}
		}
		if j, dup := seen[key]; dup {
			return ValidationError{field, fmt.Sprintf("%q duplicates players[%d]", p, j)}
		}
		seen[key] = i
	}
	return nil
}

// Marshal renders the roster back to YAML
func Marshal(r *Roster) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
