package commands

import (
	"f1stats-backend/lib/rank"
	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	resultsSeason *string
	resultsRound  *string
	qualiSeason   *string
	qualiRound    *string
	bestSeason    *string
	bestRound     *string
	bestShow      *string
)

func init() {
	resultsSeason = resultsCmd.Flags().String("season", "current", "The season to query.")
	resultsRound = resultsCmd.Flags().String("round", "last", "The round to query.")
	qualiSeason = qualifyingCmd.Flags().String("season", "current", "The season to query.")
	qualiRound = qualifyingCmd.Flags().String("round", "last", "The round to query.")
	bestSeason = bestLapsCmd.Flags().String("season", "current", "The season to query.")
	bestRound = bestLapsCmd.Flags().String("round", "last", "The round to query.")
	bestShow = bestLapsCmd.Flags().String(
		"show", "all", "Which entries to show: fastest, slowest, top, bottom or all.")
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(qualifyingCmd)
	rootCmd.AddCommand(bestLapsCmd)
}

var resultsCmd = &cobra.Command{
	Use:   "results [--season <year>] [--round <round>]",
	Short: "Shows the race classification for a round.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		results, err := client.RaceResults(cmd.Context(), *resultsSeason, *resultsRound, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch race results", err)
		}

		t := newTable()
		t.SetTitle(results.Event.Name)
		t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Grid", "Laps", "Time", "Points"})
		for _, e := range results.Results {
			finish := e.Status
			if e.FinishTime != nil {
				finish = *e.FinishTime
			}
			t.AppendRow(table.Row{e.Position, e.Driver.FullName(), e.Team, e.Grid, e.Laps, finish, e.Points})
		}
		t.Render()
	},
}

var qualifyingCmd = &cobra.Command{
	Use:   "qualifying [--season <year>] [--round <round>]",
	Short: "Shows the qualifying classification for a round.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		quali, err := client.QualifyingResults(cmd.Context(), *qualiSeason, *qualiRound, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch qualifying results", err)
		}

		t := newTable()
		t.SetTitle(quali.Event.Name)
		t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Q1", "Q2", "Q3"})
		for _, e := range quali.Entries {
			t.AppendRow(table.Row{e.Position, e.Driver.FullName(), e.Team, e.Q1, e.Q2, e.Q3})
		}
		t.Render()
	},
}

var bestLapsCmd = &cobra.Command{
	Use:   "best-laps [--season <year>] [--round <round>]",
	Short: "Shows each driver's best lap for a race, ranked.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		mode, err := rank.ParseMode(*bestShow)
		if err != nil {
			serviceutil.Fatal("invalid --show mode", err)
		}

		best, err := client.BestLaps(cmd.Context(), *bestSeason, *bestRound, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch best laps", err)
		}
		shown, err := rank.Filter(best.Timings, mode)
		if err != nil {
			serviceutil.Fatal("failed to filter best laps", err)
		}

		t := newTable()
		t.SetTitle(best.Event.Name)
		t.AppendHeader(table.Row{"Rank", "Driver", "Lap", "Time", "Speed (km/h)"})
		for _, e := range shown {
			t.AppendRow(table.Row{e.Rank, e.Driver, e.Lap, e.Time, e.SpeedKph})
		}
		t.Render()
	},
}
