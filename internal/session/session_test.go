package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/player"
	"github.com/wonny/rostercast/internal/team"
	"github.com/wonny/rostercast/pkg/logger"
)

var letters = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel",
	"India", "Juliet", "Kilo", "Lima", "Mike", "November", "Oscar", "Papa", "Quebec"}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	rows := []contracts.PlayerSeason{
		{Name: "LeBron James", ORtg: 115, DRtg: 110, GP: 70, Pos: 1000, FGA: 1300, EFG: 700, TOV: 200, FT: 300, Pace: 100, RebPct: 0.1},
		{Name: "Zero Games", ORtg: 100, DRtg: 100, GP: 0, Pos: 500, FGA: 100},
	}
	for _, l := range letters {
		rows = append(rows, contracts.PlayerSeason{
			Name: "Player " + l, ORtg: 110, DRtg: 110, GP: 60, Pos: 1000, FGA: 900, EFG: 450, TOV: 120, FT: 150, Pace: 99, RebPct: 0.1,
		})
	}
	d, err := dataset.New("2024-25", rows)
	require.NoError(t, err)
	return d
}

func testManager(t *testing.T, max int) *Manager {
	t.Helper()
	return NewManager(dataset.NewStaticStore(testDataset(t)), max, logger.Nop())
}

func TestAddPlayer(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Hypotheticals")
	require.NoError(t, err)
	ctx := context.Background()

	snap, err := s.AddPlayer(ctx, "  lebron   JAMES ")
	require.NoError(t, err)
	assert.Equal(t, []string{"LeBron James"}, snap.Players)
	assert.Equal(t, 1, snap.Size)
	assert.Equal(t, team.MaxRosterSize, snap.MaxSize)
	assert.Equal(t, "2024-25", snap.Season)
	assert.Nil(t, snap.Rates, "no rates below five players")
	assert.Equal(t, contracts.SeasonRecord{Wins: 0, Losses: 82}, snap.Record)

	_, err = s.AddPlayer(ctx, "LeBron James")
	assert.True(t, errors.Is(err, team.ErrDuplicatePlayer))

	_, err = s.AddPlayer(ctx, "   ")
	assert.True(t, errors.Is(err, ErrBlankName))

	_, err = s.AddPlayer(ctx, "Michael Jordan")
	assert.True(t, errors.Is(err, ErrUnknownPlayer))

	_, err = s.AddPlayer(ctx, "Zero Games")
	assert.True(t, errors.Is(err, player.ErrInvalidStatistics))

	assert.Equal(t, 1, s.Snapshot().Size)
}

func TestAddPlayerRosterFullCheckedFirst(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Full")
	require.NoError(t, err)
	ctx := context.Background()

	for _, l := range letters[:team.MaxRosterSize] {
		_, err := s.AddPlayer(ctx, "Player "+l)
		require.NoError(t, err)
	}

	// full wins over blank, unknown and duplicate
	for _, input := range []string{"", "Nobody", "Player Alpha", "LeBron James"} {
		_, err := s.AddPlayer(ctx, input)
		assert.True(t, errors.Is(err, ErrRosterFull), "input %q", input)
	}
}

func TestSnapshotRates(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Rated")
	require.NoError(t, err)
	ctx := context.Background()

	for _, l := range letters[:4] {
		snap, err := s.AddPlayer(ctx, "Player "+l)
		require.NoError(t, err)
		assert.False(t, snap.HasRates())
	}

	snap, err := s.AddPlayer(ctx, "Player Echo")
	require.NoError(t, err)
	require.True(t, snap.HasRates())
	assert.Equal(t, 110.0, snap.Rates.ORtg)
	assert.Equal(t, 0.0, snap.Rates.NetRtg)
	assert.Equal(t, 41, snap.Record.Wins)
	assert.Equal(t, 41, snap.Record.Losses)
}

func TestRemoveAndClear(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Churn")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.AddPlayer(ctx, "LeBron James")
	require.NoError(t, err)
	_, err = s.AddPlayer(ctx, "Player Alpha")
	require.NoError(t, err)

	snap, err := s.RemovePlayer("lebron james")
	require.NoError(t, err)
	assert.Equal(t, []string{"Player Alpha"}, snap.Players)

	_, err = s.RemovePlayer("LeBron James")
	assert.True(t, errors.Is(err, team.ErrNotFound))

	_, err = s.RemovePlayer(" ")
	assert.True(t, errors.Is(err, ErrBlankName))

	snap, err = s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Size)
	assert.Empty(t, snap.Players)
}

func TestSubscribe(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Watched")
	require.NoError(t, err)

	ch, cancel := s.Subscribe()
	initial := <-ch
	assert.Equal(t, 0, initial.Size)

	_, err = s.AddPlayer(context.Background(), "Player Alpha")
	require.NoError(t, err)
	_, err = s.AddPlayer(context.Background(), "Player Bravo")
	require.NoError(t, err)

	// only the newest snapshot is buffered
	latest := <-ch
	assert.Equal(t, 2, latest.Size)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestManagerLifecycle(t *testing.T) {
	m := testManager(t, 2)

	a, err := m.Create("A")
	require.NoError(t, err)
	_, err = m.Create("B")
	require.NoError(t, err)

	_, err = m.Create("C")
	assert.True(t, errors.Is(err, ErrTooManySessions))

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	ch, _ := a.Subscribe()
	<-ch

	require.NoError(t, m.Delete(a.ID))
	_, ok := <-ch
	assert.False(t, ok, "delete closes subscribers")

	_, err = a.AddPlayer(context.Background(), "Player Alpha")
	assert.True(t, errors.Is(err, ErrSessionClosed))

	_, err = m.Get(a.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.True(t, errors.Is(m.Delete(a.ID), ErrSessionNotFound))
	assert.Equal(t, 1, m.Len())
}

func TestCleanIdle(t *testing.T) {
	m := testManager(t, 0)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale, err := m.Create("stale")
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	fresh, err := m.Create("fresh")
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, m.CleanIdle(30*time.Minute))

	_, err = m.Get(stale.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestConcurrentAdds(t *testing.T) {
	m := testManager(t, 0)
	s, err := m.Create("Race")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, l := range letters {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, _ = s.AddPlayer(context.Background(), name)
		}("Player " + l)
	}
	wg.Wait()

	assert.Equal(t, team.MaxRosterSize, s.Snapshot().Size)
}

func TestProject(t *testing.T) {
	d := testDataset(t)

	names := make([]string, 0, 5)
	for _, l := range letters[:5] {
		names = append(names, fmt.Sprintf("player %s", l))
	}

	snap, err := Project(d, "Stateless", names)
	require.NoError(t, err)
	assert.Equal(t, "Stateless", snap.Name)
	assert.Equal(t, 5, snap.Size)
	require.NotNil(t, snap.Rates)
	assert.Equal(t, 41, snap.Record.Wins)

	_, err = Project(d, "Bad", []string{"Player Alpha", "player alpha"})
	assert.True(t, errors.Is(err, team.ErrDuplicatePlayer))
}
