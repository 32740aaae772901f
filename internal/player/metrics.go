package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/rostercast/internal/contracts"
)

// ErrInvalidStatistics is returned when season totals cannot produce finite rates
var ErrInvalidStatistics = errors.New("invalid player statistics")

// Metric identifies a per-player rate that can be rolled up into a team value
type Metric string

const (
	MetricPace   Metric = "pace"
	MetricEFGPct Metric = "efg_pct"
	MetricTOVPct Metric = "tov_pct"
	MetricREBPct Metric = "reb_pct"
	MetricFTRate Metric = "ft_rate"
	MetricORtg   Metric = "ortg"
	MetricDRtg   Metric = "drtg"
)

// Metrics is the normalized rate record for one player in one season.
// Build values with New or FromSeason, which validate the inputs and fill the
// derived rates. The team engine never mutates a Metrics it is given.
type Metrics struct {
	Name string

	// Inputs
	ORtg        float64
	DRtg        float64
	MPG         float64
	GP          float64
	Possessions float64
	Pace        float64
	RebPct      float64
	Turnovers   float64
	FreeThrows  float64
	FGA         float64
	EffectiveFG float64

	// Derived at construction
	PossessionsPerGame float64 // pos / gp
	TurnoverRate       float64 // tov / pos
	FreeThrowRate      float64 // ft / fga
	EffectiveFGPct     float64 // efg / fga
}

// New normalizes raw season totals into per-possession / per-attempt rates.
// gp, pos and fga must be positive and every input finite.
func New(name string, ortg, drtg, mpg, gp, pos, pace, rebPct, tov, ft, fga, efg float64) (*Metrics, error) {
	for label, v := range map[string]float64{
		"ortg": ortg, "drtg": drtg, "mpg": mpg, "gp": gp, "pos": pos, "pace": pace,
		"reb_pct": rebPct, "tov": tov, "ft": ft, "fga": fga, "efg": efg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s: %s is not finite", ErrInvalidStatistics, name, label)
		}
	}

	switch {
	case gp <= 0:
		return nil, fmt.Errorf("%w: %s: games played must be positive, got %v", ErrInvalidStatistics, name, gp)
	case pos <= 0:
		return nil, fmt.Errorf("%w: %s: possessions must be positive, got %v", ErrInvalidStatistics, name, pos)
	case fga <= 0:
		return nil, fmt.Errorf("%w: %s: field goal attempts must be positive, got %v", ErrInvalidStatistics, name, fga)
	}

	return &Metrics{
		Name:        name,
		ORtg:        ortg,
		DRtg:        drtg,
		MPG:         mpg,
		GP:          gp,
		Possessions: pos,
		Pace:        pace,
		RebPct:      rebPct,
		Turnovers:   tov,
		FreeThrows:  ft,
		FGA:         fga,
		EffectiveFG: efg,

		PossessionsPerGame: pos / gp,
		TurnoverRate:       tov / pos,
		FreeThrowRate:      ft / fga,
		EffectiveFGPct:     efg / fga,
	}, nil
}

// FromSeason builds Metrics from a dataset row
func FromSeason(s contracts.PlayerSeason) (*Metrics, error) {
	return New(s.Name, s.ORtg, s.DRtg, s.MPG, s.GP, s.Pos, s.Pace, s.RebPct, s.TOV, s.FT, s.FGA, s.EFG)
}

// Value returns the rate the team engine weights for metric m
func (p *Metrics) Value(m Metric) (float64, error) {
	switch m {
	case MetricPace:
		return p.Pace, nil
	case MetricEFGPct:
		return p.EffectiveFGPct, nil
	case MetricTOVPct:
		return p.TurnoverRate, nil
	case MetricREBPct:
		return p.RebPct, nil
	case MetricFTRate:
		return p.FreeThrowRate, nil
	case MetricORtg:
		return p.ORtg, nil
	case MetricDRtg:
		return p.DRtg, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", m)
	}
}
