package team

import (
	"math"

	"github.com/wonny/rostercast/internal/contracts"
)

const (
	// PythagoreanExponent is a tuned constant; changing it changes every projection
	PythagoreanExponent = 16.1615

	SeasonGames   = 82
	MinRosterSize = 5
	MaxRosterSize = 15
)

// WinPct is the fixed-exponent pythagorean expectation ortg^z / (ortg^z + drtg^z)
func WinPct(ortg, drtg float64) float64 {
	oz := math.Pow(ortg, PythagoreanExponent)
	dz := math.Pow(drtg, PythagoreanExponent)
	return oz / (oz + dz)
}

// ProjectRecord turns team ratings into an 82 game record.
// A non-finite expectation (e.g. both ratings zero) projects zero wins.
func ProjectRecord(ortg, drtg float64) contracts.SeasonRecord {
	raw := WinPct(ortg, drtg)

	wins := 0
	if !math.IsNaN(raw) && !math.IsInf(raw, 0) {
		wins = int(math.Floor(SeasonGames * raw))
	}
	wins = max(0, min(SeasonGames, wins))

	return contracts.SeasonRecord{
		Wins:   wins,
		Losses: SeasonGames - wins,
		WinPct: float64(wins) / SeasonGames,
	}
}

// Record projects the roster's season. Fewer than MinRosterSize members is a
// defined degenerate case: 0-82 without computing ratings. A full roster whose
// ratings cannot be aggregated (zero total possessions per game, only possible
// with hand-built Metrics) projects 0-82 as well; use RecordE to see the cause.
func (r *Roster) Record() contracts.SeasonRecord {
	rec, err := r.RecordE()
	if err != nil {
		return winless()
	}
	return rec
}

// RecordE is Record with the aggregation error surfaced. Below MinRosterSize
// it returns 0-82 and a nil error.
func (r *Roster) RecordE() (contracts.SeasonRecord, error) {
	if r.Len() < MinRosterSize {
		return winless(), nil
	}

	ortg, err := r.ORtg()
	if err != nil {
		return winless(), err
	}
	drtg, err := r.DRtg()
	if err != nil {
		return winless(), err
	}

	return ProjectRecord(ortg, drtg), nil
}

func winless() contracts.SeasonRecord {
	return contracts.SeasonRecord{Wins: 0, Losses: SeasonGames, WinPct: 0}
}
