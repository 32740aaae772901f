package contracts

// SeasonRecord is a projected regular season record; Wins + Losses is always 82
type SeasonRecord struct {
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"win_pct"`
}

// Games returns the number of games the record covers
func (r SeasonRecord) Games() int {
	return r.Wins + r.Losses
}

// TeamRates holds raw, unrounded possession-weighted team values
type TeamRates struct {
	ORtg   float64 `json:"ortg"`
	DRtg   float64 `json:"drtg"`
	NetRtg float64 `json:"net_rtg"`
	Pace   float64 `json:"pace"`
	EFGPct float64 `json:"efg_pct"`
	TOVPct float64 `json:"tov_pct"`
	REBPct float64 `json:"reb_pct"`
	FTRate float64 `json:"ft_rate"`
}

// TeamSnapshot is what output consumers re-read after every roster mutation
type TeamSnapshot struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Season  string       `json:"season,omitempty"`
	Size    int          `json:"size"`
	MaxSize int          `json:"max_size"`
	Players []string     `json:"players"`
	Record  SeasonRecord `json:"record"`
	Rates   *TeamRates   `json:"rates,omitempty"` // nil below the minimum roster size
}

// HasRates reports whether the roster was large enough to rate
func (s *TeamSnapshot) HasRates() bool {
	return s.Rates != nil
}
