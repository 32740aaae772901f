package rosterfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const splash = `
team: Splash Brothers
season: 2015-16
players:
  - Stephen Curry
  - "  Klay Thompson  "
  - Draymond Green
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(splash))
	require.NoError(t, err)

	assert.Equal(t, "Splash Brothers", r.Team)
	assert.Equal(t, "2015-16", r.Season)
	assert.Equal(t, []string{"Stephen Curry", "Klay Thompson", "Draymond Green"}, r.Players)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("team: x\nplayer:\n  - Stephen Curry\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tooMany := make([]string, 16)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("Player %c", 'A'+i)
	}

	tests := []struct {
		name    string
		players []string
		field   string
	}{
		{"empty", nil, "players"},
		{"too many", tooMany, "players"},
		{"blank", []string{"Stephen Curry", "   "}, "players[1]"},
		{"digits only", []string{"42"}, "players[0]"},
		{"duplicate", []string{"Stephen Curry", "stephen  curry"}, "players[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Roster{Team: "x", Players: tt.players})
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Validate(&Roster{Players: tooMany[:15]}))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(splash), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, r.Players, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	r, err := Parse([]byte(splash))
	require.NoError(t, err)

	out, err := Marshal(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "team: Splash Brothers\n"))

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}
