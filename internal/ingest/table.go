package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/wonny/rostercast/internal/contracts"
)

// Table is a header/rows result set as returned by the stats API
type Table struct {
	Name    string              `json:"name"`
	Headers []string            `json:"headers"`
	Rows    [][]json.RawMessage `json:"rowSet"`
}

// column returns the index of a header, case-insensitive
func (t *Table) column(name string) (int, error) {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s missing column %s", ErrMalformedTable, t.Name, name)
}

// record is one row keyed by upper-case header
type record map[string]json.RawMessage

// records converts rows into header-keyed records, skipping short rows
func (t *Table) records() []record {
	out := make([]record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) < len(t.Headers) {
			continue
		}
		r := make(record, len(t.Headers))
		for i, h := range t.Headers {
			r[strings.ToUpper(h)] = row[i]
		}
		out = append(out, r)
	}
	return out
}

func (r record) float(key string) float64 {
	raw, ok := r[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

func (r record) str(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	return s
}

// key returns the row's player id as a string regardless of JSON type
func (r record) key(col string) string {
	raw, ok := r[col]
	if !ok {
		return ""
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

// Possessions estimates offensive possessions: (FGA - OREB) + TOV + 0.44*FTA
func Possessions(fga, oreb, tov, fta float64) float64 {
	return (fga - oreb) + tov + 0.44*fta
}

// EffectiveFieldGoals weights made threes by 1.5: FGM + 0.5*FG3M
func EffectiveFieldGoals(fgm, fg3m float64) float64 {
	return fgm + 0.5*fg3m
}

// Join merges the estimated-metrics and box-score tables by PLAYER_ID.
// Players missing from either table are dropped. Output is ordered by id.
func Join(metrics, box *Table) ([]contracts.PlayerSeason, error) {
	for _, col := range []string{"PLAYER_ID", "PLAYER_NAME", "E_OFF_RATING", "E_DEF_RATING", "MIN", "GP", "E_PACE", "E_REB_PCT"} {
		if _, err := metrics.column(col); err != nil {
			return nil, err
		}
	}
	for _, col := range []string{"PLAYER_ID", "FGA", "OREB", "TOV", "FTA", "FTM", "FGM", "FG3M"} {
		if _, err := box.column(col); err != nil {
			return nil, err
		}
	}

	boxByID := make(map[string]record, len(box.Rows))
	for _, r := range box.records() {
		boxByID[r.key("PLAYER_ID")] = r
	}

	type keyed struct {
		id  string
		row contracts.PlayerSeason
	}

	var joined []keyed
	for _, m := range metrics.records() {
		id := m.key("PLAYER_ID")
		b, ok := boxByID[id]
		if !ok {
			continue
		}

		fga := b.float("FGA")
		joined = append(joined, keyed{id: id, row: contracts.PlayerSeason{
			Name:   m.str("PLAYER_NAME"),
			ORtg:   m.float("E_OFF_RATING"),
			DRtg:   m.float("E_DEF_RATING"),
			MPG:    m.float("MIN"),
			GP:     m.float("GP"),
			Pos:    Possessions(fga, b.float("OREB"), b.float("TOV"), b.float("FTA")),
			Pace:   m.float("E_PACE"),
			RebPct: m.float("E_REB_PCT"),
			TOV:    b.float("TOV"),
			FT:     b.float("FTM"),
			FGA:    fga,
			EFG:    EffectiveFieldGoals(b.float("FGM"), b.float("FG3M")),
		}})
	}

	sort.Slice(joined, func(i, j int) bool {
		return lessID(joined[i].id, joined[j].id)
	})

	out := make([]contracts.PlayerSeason, len(joined))
	for i, k := range joined {
		out[i] = k.row
	}
	return out, nil
}

// lessID orders numeric ids numerically and falls back to string order
func lessID(a, b string) bool {
	fa, ea := strconv.ParseFloat(a, 64)
	fb, eb := strconv.ParseFloat(b, 64)
	if ea == nil && eb == nil && !math.IsNaN(fa) && !math.IsNaN(fb) && fa != fb {
		return fa < fb
	}
	return a < b
}
