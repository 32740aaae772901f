package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlColumns maps data-stat attributes to stats API headers
var htmlColumns = map[string]string{
	"player_id":    "PLAYER_ID",
	"player":       "PLAYER_NAME",
	"name_display": "PLAYER_NAME",
	"off_rtg":      "E_OFF_RATING",
	"def_rtg":      "E_DEF_RATING",
	"mp_per_g":     "MIN",
	"g":            "GP",
	"games":        "GP",
	"pace":         "E_PACE",
	"trb_pct":      "E_REB_PCT",
	"fga":          "FGA",
	"orb":          "OREB",
	"tov":          "TOV",
	"fta":          "FTA",
	"ft":           "FTM",
	"fg":           "FGM",
	"fg3":          "FG3M",
}

// ParseHTML reads every `tr` whose cells carry data-stat attributes into a
// single Table usable by Join as both the metrics and box-score side.
// Percentages written as whole numbers (e.g. 11.2) are scaled to fractions.
func ParseHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	headers := []string{"PLAYER_ID", "PLAYER_NAME", "E_OFF_RATING", "E_DEF_RATING", "MIN", "GP",
		"E_PACE", "E_REB_PCT", "FGA", "OREB", "TOV", "FTA", "FTM", "FGM", "FG3M"}
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		pos[h] = i
	}

	t := &Table{Name: "html", Headers: headers}

	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td[data-stat], th[data-stat]")
		if cells.Length() == 0 {
			return
		}

		values := make([]json.RawMessage, len(headers))
		for j := range values {
			values[j] = json.RawMessage("0")
		}

		var name string
		cells.Each(func(_ int, cell *goquery.Selection) {
			stat, _ := cell.Attr("data-stat")
			col, ok := htmlColumns[stat]
			if !ok {
				return
			}
			text := strings.TrimSpace(cell.Text())

			if col == "PLAYER_NAME" {
				name = text
				values[pos[col]], _ = json.Marshal(text)
				if id, ok := cell.Attr("data-append-csv"); ok && id != "" {
					values[pos["PLAYER_ID"]], _ = json.Marshal(id)
				}
				return
			}
			if col == "PLAYER_ID" {
				if id, ok := cell.Attr("data-append-csv"); ok && id != "" {
					text = id
				}
				values[pos[col]], _ = json.Marshal(text)
				return
			}

			f, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
			if err != nil {
				return
			}
			if col == "E_REB_PCT" && f > 1 {
				f /= 100
			}
			values[pos[col]], _ = json.Marshal(f)
		})

		// header and separator rows carry no player name
		if name == "" || strings.EqualFold(name, "player") {
			return
		}
		if string(values[pos["PLAYER_ID"]]) == "0" {
			values[pos["PLAYER_ID"]], _ = json.Marshal(name)
		}
		t.Rows = append(t.Rows, values)
	})

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: no player rows found", ErrMalformedTable)
	}
	return t, nil
}
