package contracts

// PlayerSeason is one row of a season dataset: raw season totals for one player
// ⭐ SSOT: dataset file / stats ingest / database rows all share this shape
type PlayerSeason struct {
	Name   string  `json:"name"`
	ORtg   float64 `json:"ortg"`    // Offensive rating (points per 100 possessions)
	DRtg   float64 `json:"drtg"`    // Defensive rating (points allowed per 100 possessions)
	MPG    float64 `json:"mpg"`     // Minutes per game
	GP     float64 `json:"gp"`      // Games played
	Pos    float64 `json:"pos"`     // Total possessions (estimated)
	Pace   float64 `json:"pace"`    // Possessions per 48 minutes
	RebPct float64 `json:"reb_pct"` // Rebound percentage, already a rate
	TOV    float64 `json:"tov"`     // Turnovers
	FT     float64 `json:"ft"`      // Free throws made
	FGA    float64 `json:"fga"`     // Field goal attempts
	EFG    float64 `json:"efg"`     // Effective field goals (FGM + 0.5 * FG3M)
}
