package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rostercast/internal/contracts"
)

func TestNew_DerivedFields(t *testing.T) {
	p, err := New("Nikola Jokić", 128.3, 110.1, 36.7, 70, 1960, 99.2, 0.205, 210, 430, 1200, 780)
	require.NoError(t, err)

	assert.Equal(t, "Nikola Jokić", p.Name)
	assert.InDelta(t, 1960.0/70, p.PossessionsPerGame, 1e-12)
	assert.InDelta(t, 210.0/1960, p.TurnoverRate, 1e-12)
	assert.InDelta(t, 430.0/1200, p.FreeThrowRate, 1e-12)
	assert.InDelta(t, 780.0/1200, p.EffectiveFGPct, 1e-12)

	// inputs are kept as given
	assert.Equal(t, 128.3, p.ORtg)
	assert.Equal(t, 110.1, p.DRtg)
	assert.Equal(t, 0.205, p.RebPct)
	assert.Equal(t, 99.2, p.Pace)
}

func TestNew_InvalidStatistics(t *testing.T) {
	tests := []struct {
		name string
		gp   float64
		pos  float64
		fga  float64
	}{
		{"zero games", 0, 100, 50},
		{"negative games", -1, 100, 50},
		{"zero possessions", 10, 0, 50},
		{"zero field goal attempts", 10, 100, 0},
		{"nan possessions", 10, math.NaN(), 50},
		{"infinite attempts", 10, 100, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("Bench Guy", 100, 110, 5, tt.gp, tt.pos, 98, 0.05, 3, 2, tt.fga, 20)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidStatistics)
		})
	}
}

func TestNew_Deterministic(t *testing.T) {
	a, err := New("A", 110, 108, 30, 60, 1500, 100, 0.1, 120, 200, 900, 480)
	require.NoError(t, err)
	b, err := New("A", 110, 108, 30, 60, 1500, 100, 0.1, 120, 200, 900, 480)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFromSeason(t *testing.T) {
	row := contracts.PlayerSeason{
		Name: "LeBron James", ORtg: 117.9, DRtg: 112.4, MPG: 34.9, GP: 70, Pos: 1750,
		Pace: 100.1, RebPct: 0.121, TOV: 255, FT: 300, FGA: 1270, EFG: 710,
	}

	p, err := FromSeason(row)
	require.NoError(t, err)

	assert.Equal(t, "LeBron James", p.Name)
	assert.InDelta(t, 25.0, p.PossessionsPerGame, 1e-12)
	assert.InDelta(t, 710.0/1270, p.EffectiveFGPct, 1e-12)
}

func TestValue(t *testing.T) {
	p, err := New("A", 112, 109, 30, 50, 1000, 97.5, 0.15, 100, 150, 600, 330)
	require.NoError(t, err)

	tests := []struct {
		metric Metric
		want   float64
	}{
		{MetricPace, 97.5},
		{MetricEFGPct, 330.0 / 600},
		{MetricTOVPct, 100.0 / 1000},
		{MetricREBPct, 0.15},
		{MetricFTRate, 150.0 / 600},
		{MetricORtg, 112},
		{MetricDRtg, 109},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			got, err := p.Value(tt.metric)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = p.Value(Metric("net_rtg"))
	assert.Error(t, err)
}
