package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/rostercast/internal/rosterfile"
	"github.com/wonny/rostercast/internal/session"
	"github.com/wonny/rostercast/internal/team"
)

var projectCmd = &cobra.Command{
	Use:   "project [player names...]",
	Short: "Project a season record for a roster",
	Long: `Builds a roster from player names (or a YAML roster file) and prints the
team's possession-weighted ratings and its projected 82 game record.

Names are matched case-insensitively, ignoring spaces and punctuation.
Rosters hold at most 15 players; ratings need at least 5.

Example:
  go run ./cmd/rostercast project "Stephen Curry" "Klay Thompson" "Draymond Green" \
      "Andre Iguodala" "Harrison Barnes" --team "Death Lineup"
  go run ./cmd/rostercast project --roster rosters/splash.yaml --json`,
	RunE: runProject,
}

var (
	projectRoster string
	projectTeam   string
	projectJSON   bool
)

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVar(&projectRoster, "roster", "", "YAML roster file")
	projectCmd.Flags().StringVar(&projectTeam, "team", "", "team name")
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "print the snapshot as JSON")
}

func runProject(cmd *cobra.Command, args []string) error {
	names := args
	teamName := projectTeam

	if projectRoster != "" {
		if len(args) > 0 {
			return fmt.Errorf("pass either player names or --roster, not both")
		}
		r, err := rosterfile.Load(projectRoster)
		if err != nil {
			return fmt.Errorf("load roster: %w", err)
		}
		names = r.Players
		if teamName == "" {
			teamName = r.Team
		}
		if r.Season != "" && season == "" {
			season = r.Season
		}
	}

	if len(names) == 0 {
		return fmt.Errorf("no players given")
	}
	if len(names) > team.MaxRosterSize {
		return fmt.Errorf("%w: %d players given, at most %d allowed", session.ErrRosterFull, len(names), team.MaxRosterSize)
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	store, cleanup, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := store.Current()
	if err != nil {
		return err
	}

	snap, err := session.Project(d, teamName, names)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"team":    snap.Name,
		"players": snap.Size,
		"wins":    snap.Record.Wins,
	}).Debug("Projection complete")

	out := cmd.OutOrStdout()
	if projectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	PrintSnapshot(out, snap)
	if !snap.HasRates() {
		PrintWarning(out, fmt.Sprintf("at least %d players are needed for ratings", team.MinRosterSize))
	}
	return nil
}
