package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/rostercast/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// every command prints through these so output stays uniform
// ═══════════════════════════════════════════════════════════

const notAvailable = "N/A"

// FormatRating renders ratings and pace with two decimals
func FormatRating(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatRate renders fractional rates with three decimals
func FormatRate(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// FormatRecord renders a record as "W-L"
func FormatRecord(r contracts.SeasonRecord) string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintNumberedList prints a numbered list
func PrintNumberedList(w io.Writer, items []string) {
	for i, item := range items {
		fmt.Fprintf(w, "   %2d. %s\n", i+1, item)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintTable prints left-aligned columns sized to their widest cell
func PrintTable(w io.Writer, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len([]rune(c))
	}
	for _, row := range rows {
		for i, v := range row {
			widths[i] = max(widths[i], len([]rune(v)))
		}
	}

	printRow := func(values []string) {
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = v + strings.Repeat(" ", widths[i]-len([]rune(v)))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	printRow(columns)
	total := 0
	for _, width := range widths {
		total += width
	}
	fmt.Fprintln(w, strings.Repeat("─", total+2*(len(widths)-1)))
	for _, row := range rows {
		printRow(row)
	}
}

// PrintSnapshot prints a team's roster, ratings and projected record.
// Ratings read N/A until the roster reaches the minimum size.
func PrintSnapshot(w io.Writer, snap contracts.TeamSnapshot) {
	name := snap.Name
	if name == "" {
		name = "Unnamed team"
	}

	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s", name)
	if snap.Season != "" {
		fmt.Fprintf(w, " (%s)", snap.Season)
	}
	fmt.Fprintln(w)
	PrintSeparator(w)
	fmt.Fprintf(w, "  Roster    : %d/%d\n", snap.Size, snap.MaxSize)
	PrintNumberedList(w, snap.Players)
	PrintSeparator(w)

	values := map[string]string{}
	keys := []string{"ORtg", "DRtg", "NetRtg", "Pace", "eFG%", "TOV%", "REB%", "FT Rate"}
	for _, k := range keys {
		values[k] = notAvailable
	}
	if r := snap.Rates; r != nil {
		values["ORtg"] = FormatRating(r.ORtg)
		values["DRtg"] = FormatRating(r.DRtg)
		values["NetRtg"] = FormatRating(r.NetRtg)
		values["Pace"] = FormatRating(r.Pace)
		values["eFG%"] = FormatRate(r.EFGPct)
		values["TOV%"] = FormatRate(r.TOVPct)
		values["REB%"] = FormatRate(r.REBPct)
		values["FT Rate"] = FormatRate(r.FTRate)
	}
	for _, k := range keys {
		PrintKeyValue(w, k, values[k], 8)
	}

	PrintSeparator(w)
	PrintKeyValue(w, "Record", FormatRecord(snap.Record), 8)
	PrintKeyValue(w, "Win%", FormatRate(snap.Record.WinPct), 8)
	PrintDoubleSeparator(w)
}
