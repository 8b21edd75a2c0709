package commands

import (
	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	standingsSeason    *string
	constructorsSeason *string
	gridSeason         *string
)

func init() {
	standingsSeason = standingsCmd.Flags().String("season", "current", "The season to query.")
	constructorsSeason = constructorsCmd.Flags().String("season", "current", "The season to query.")
	gridSeason = gridCmd.Flags().String("season", "current", "The season to query.")
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(constructorsCmd)
	rootCmd.AddCommand(gridCmd)
}

var standingsCmd = &cobra.Command{
	Use:   "standings [--season <year>]",
	Short: "Shows the driver championship standings.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		standings, err := client.DriverStandings(cmd.Context(), *standingsSeason, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch driver standings", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Points", "Wins"})
		for _, e := range standings.Entries {
			t.AppendRow(table.Row{e.Position, e.Driver.FullName(), e.Team, e.Points, e.Wins})
		}
		t.Render()
	},
}

var constructorsCmd = &cobra.Command{
	Use:   "constructors [--season <year>]",
	Short: "Shows the constructor championship standings.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		standings, err := client.ConstructorStandings(cmd.Context(), *constructorsSeason, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch constructor standings", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Pos", "Team", "Points", "Wins"})
		for _, e := range standings.Entries {
			t.AppendRow(table.Row{e.Position, e.Team, e.Points, e.Wins})
		}
		t.Render()
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid [--season <year>]",
	Short: "Shows the season's driver lineup.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		grid, err := client.SeasonGrid(cmd.Context(), *gridSeason, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch the season grid", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Code", "No", "Driver", "Age", "Nationality", "Team"})
		for _, e := range grid {
			t.AppendRow(table.Row{e.Code, e.Number, e.Name, e.Age, e.Nationality, e.Team})
		}
		t.Render()
	},
}
