package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/wonny/rostercast/internal/contracts"
)

// ErrEmptyDataset is returned when a source yields no named players
var ErrEmptyDataset = errors.New("dataset has no players")

// Dataset is an immutable, already-parsed season of player rows
type Dataset struct {
	season  string
	players []contracts.PlayerSeason
	index   map[string]int // normalized name -> position in players
	version string         // content hash of season + indexed rows
}

// New indexes rows by normalized name. Rows without a usable name are skipped;
// when two rows normalize to the same key the first one wins.
func New(season string, rows []contracts.PlayerSeason) (*Dataset, error) {
	d := &Dataset{
		season:  season,
		players: make([]contracts.PlayerSeason, 0, len(rows)),
		index:   make(map[string]int, len(rows)),
	}

	for _, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		key := NormalizeName(row.Name)
		if key == "" {
			continue
		}
		if _, dup := d.index[key]; dup {
			continue
		}
		d.index[key] = len(d.players)
		d.players = append(d.players, row)
	}

	if len(d.players) == 0 {
		return nil, fmt.Errorf("%w: season %s", ErrEmptyDataset, season)
	}

	version, err := contentVersion(season, d.players)
	if err != nil {
		return nil, err
	}
	d.version = version

	return d, nil
}

func contentVersion(season string, rows []contracts.PlayerSeason) (string, error) {
	h := sha256.New()
	h.Write([]byte(season))
	h.Write([]byte{0})
	if err := json.NewEncoder(h).Encode(rows); err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)[:8]), nil
}

// Parse decodes a JSON array of player rows (records orientation)
func Parse(season string, r io.Reader) (*Dataset, error) {
	var rows []contracts.PlayerSeason
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return New(season, rows)
}

// Load reads a dataset file from disk
func Load(path, season string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	d, err := Parse(season, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Season returns the season label, e.g. "2024-25"
func (d *Dataset) Season() string {
	return d.season
}

// Version identifies the dataset contents. Two datasets with the same season
// label but different stats have different versions.
func (d *Dataset) Version() string {
	return d.version
}

// Len returns the number of indexed players
func (d *Dataset) Len() int {
	return len(d.players)
}

// Players returns a copy of all rows in source order
func (d *Dataset) Players() []contracts.PlayerSeason {
	out := make([]contracts.PlayerSeason, len(d.players))
	copy(out, d.players)
	return out
}

// Lookup resolves free text to a row by normalized name
func (d *Dataset) Lookup(input string) (contracts.PlayerSeason, bool) {
	key := NormalizeName(input)
	if key == "" {
		return contracts.PlayerSeason{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return contracts.PlayerSeason{}, false
	}
	return d.players[i], true
}

// Names returns every player name sorted lexicographically
func (d *Dataset) Names() []string {
	names := make([]string, len(d.players))
	for i, p := range d.players {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// Search returns up to limit rows whose normalized name contains the normalized
// query. Prefix matches come first, then alphabetical order.
func (d *Dataset) Search(query string, limit int) []contracts.PlayerSeason {
	q := NormalizeName(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type hit struct {
		row    contracts.PlayerSeason
		prefix bool
	}

	var hits []hit
	for key, i := range d.index {
		if strings.Contains(key, q) {
			hits = append(hits, hit{row: d.players[i], prefix: strings.HasPrefix(key, q)})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		return hits[i].row.Name < hits[j].row.Name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]contracts.PlayerSeason, len(hits))
	for i, h := range hits {
		out[i] = h.row
	}
	return out
}
