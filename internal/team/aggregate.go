package team

import (
	"fmt"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/player"
)

// =============================================================================
// Possession-weighted aggregation (pure, recomputed on every call)
// =============================================================================

// WeightedMean returns Σ(m_i * ppg_i) / Σ ppg_i over the roster.
// Members are summed in name order so repeated calls are bit-identical.
// An empty roster yields ErrInsufficientRoster instead of NaN.
func (r *Roster) WeightedMean(m player.Metric) (float64, error) {
	if len(r.members) == 0 {
		return 0, fmt.Errorf("%w: %s of an empty roster", ErrInsufficientRoster, m)
	}

	var weighted, weights float64
	for _, p := range r.Players() {
		v, err := p.Value(m)
		if err != nil {
			return 0, err
		}
		weighted += v * p.PossessionsPerGame
		weights += p.PossessionsPerGame
	}

	if weights == 0 {
		return 0, fmt.Errorf("%w: %s with zero total possessions", ErrInsufficientRoster, m)
	}

	return weighted / weights, nil
}

// Pace estimates team possessions per 48 minutes
func (r *Roster) Pace() (float64, error) {
	return r.WeightedMean(player.MetricPace)
}

// EFGPct estimates team effective field goal percentage
func (r *Roster) EFGPct() (float64, error) {
	return r.WeightedMean(player.MetricEFGPct)
}

// TOVPct estimates the share of possessions ending in a turnover
func (r *Roster) TOVPct() (float64, error) {
	return r.WeightedMean(player.MetricTOVPct)
}

// REBPct estimates team rebound percentage
func (r *Roster) REBPct() (float64, error) {
	return r.WeightedMean(player.MetricREBPct)
}

// FTRate estimates team free throws made per field goal attempt
func (r *Roster) FTRate() (float64, error) {
	return r.WeightedMean(player.MetricFTRate)
}

// ORtg estimates team offensive rating
func (r *Roster) ORtg() (float64, error) {
	return r.WeightedMean(player.MetricORtg)
}

// DRtg estimates team defensive rating
func (r *Roster) DRtg() (float64, error) {
	return r.WeightedMean(player.MetricDRtg)
}

// NetRtg is ORtg - DRtg of the aggregated ratings, never a weighted mean of
// per-player net ratings.
func (r *Roster) NetRtg() (float64, error) {
	ortg, err := r.ORtg()
	if err != nil {
		return 0, err
	}
	drtg, err := r.DRtg()
	if err != nil {
		return 0, err
	}
	return ortg - drtg, nil
}

// Rates computes all eight team values
func (r *Roster) Rates() (contracts.TeamRates, error) {
	var rates contracts.TeamRates

	ortg, err := r.ORtg()
	if err != nil {
		return rates, err
	}
	drtg, err := r.DRtg()
	if err != nil {
		return rates, err
	}

	rates.ORtg = ortg
	rates.DRtg = drtg
	rates.NetRtg = ortg - drtg

	for _, f := range []struct {
		metric player.Metric
		dst    *float64
	}{
		{player.MetricPace, &rates.Pace},
		{player.MetricEFGPct, &rates.EFGPct},
		{player.MetricTOVPct, &rates.TOVPct},
		{player.MetricREBPct, &rates.REBPct},
		{player.MetricFTRate, &rates.FTRate},
	} {
		v, err := r.WeightedMean(f.metric)
		if err != nil {
			return rates, err
		}
		*f.dst = v
	}

	return rates, nil
}
