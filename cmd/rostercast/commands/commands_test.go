package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/ingest"
)

var lineup = []string{"Stephen Curry", "Klay Thompson", "Draymond Green", "Andre Iguodala", "Harrison Barnes"}

func writeDataset(t *testing.T) string {
	t.Helper()

	rows := make([]contracts.PlayerSeason, 0, len(lineup))
	for _, name := range lineup {
		rows = append(rows, contracts.PlayerSeason{
			Name: name, ORtg: 120, DRtg: 100, MPG: 32, GP: 79, Pos: 1200, Pace: 99.333,
			RebPct: 0.1, TOV: 150, FT: 200, FGA: 1000, EFG: 550,
		})
	}

	path := filepath.Join(t.TempDir(), "player_data.json")
	require.NoError(t, ingest.WriteJSON(path, rows))
	return path
}

// run executes the root command with fresh flag state
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	datasetPath, season, verbose = "", "", false
	projectRoster, projectTeam, projectJSON = "", "", false
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "111.80", FormatRating(111.8))
	assert.Equal(t, "99.33", FormatRating(99.333))
	assert.Equal(t, "0.523", FormatRate(0.52345))
	assert.Equal(t, "46-36", FormatRecord(contracts.SeasonRecord{Wins: 46, Losses: 36}))
}

func TestPrintSnapshotBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	PrintSnapshot(&buf, contracts.TeamSnapshot{
		Name:    "Bench",
		Size:    2,
		MaxSize: 15,
		Players: []string{"A", "B"},
		Record:  contracts.SeasonRecord{Wins: 0, Losses: 82},
	})

	out := buf.String()
	assert.Contains(t, out, "Bench")
	assert.Contains(t, out, "Roster    : 2/15")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "0-82")
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"Player", "GP"}, [][]string{{"Luka Dončić", "50"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Player       GP", lines[0])
	assert.Equal(t, "Luka Dončić  50", lines[2])
}

func TestProjectCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "project", "--dataset", path, "--team", "Death Lineup",
		"stephen curry", "KLAY THOMPSON", "Draymond Green", "Andre Iguodala", "Harrison Barnes")
	require.NoError(t, err)

	assert.Contains(t, out, "Death Lineup")
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "99.33")
	assert.Contains(t, out, "20.00")
	assert.NotContains(t, out, "N/A")
}

func TestProjectCommandJSON(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, append([]string{"project", "--dataset", path, "--json"}, lineup...)...)
	require.NoError(t, err)

	var snap contracts.TeamSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 5, snap.Size)
	require.NotNil(t, snap.Rates)
	assert.Equal(t, 20.0, snap.Rates.NetRtg)
	assert.Equal(t, 82, snap.Record.Wins+snap.Record.Losses)
}

func TestProjectCommandRosterFile(t *testing.T) {
	path := writeDataset(t)
	roster := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(roster, []byte("team: Splash\nplayers:\n  - Stephen Curry\n  - Klay Thompson\n"), 0o644))

	out, err := run(t, "project", "--dataset", path, "--roster", roster)
	require.NoError(t, err)
	assert.Contains(t, out, "Splash")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "0-82")
}

func TestProjectCommandErrors(t *testing.T) {
	path := writeDataset(t)

	_, err := run(t, "project", "--dataset", path, "Stephen Curry", "Wilt Chamberlain")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "project", "--dataset", path, "Stephen Curry", "stephen curry")
	assert.ErrorContains(t, err, "already in team")

	_, err = run(t, "project", "--dataset", path)
	assert.Error(t, err)
}

func TestDatasetSearchCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "dataset", "search", "--dataset", path, "green")
	require.NoError(t, err)
	assert.Contains(t, out, "Draymond Green")
	assert.NotContains(t, out, "Stephen Curry")
}
