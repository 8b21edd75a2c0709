package commands

import (
	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	lapsSeason     *string
	lapsRound      *string
	pitstopsSeason *string
	pitstopsRound  *string
)

func init() {
	lapsSeason = lapsCmd.Flags().String("season", "current", "The season to query.")
	lapsRound = lapsCmd.Flags().String("round", "last", "The round to query.")
	pitstopsSeason = pitstopsCmd.Flags().String("season", "current", "The season to query.")
	pitstopsRound = pitstopsCmd.Flags().String("round", "last", "The round to query.")
	rootCmd.AddCommand(lapsCmd)
	rootCmd.AddCommand(pitstopsCmd)
}

var lapsCmd = &cobra.Command{
	Use:   "laps <driver> [--season <year>] [--round <round>]",
	Short: "Shows a driver's lap times for a race.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		laps, err := client.DriverLaps(cmd.Context(), *lapsSeason, *lapsRound, args[0], fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch lap times", err)
		}

		t := newTable()
		t.SetTitle(laps.Event.Name + ": " + laps.Driver.FullName())
		t.AppendHeader(table.Row{"Lap", "Pos", "Time"})
		for _, l := range laps.Laps {
			t.AppendRow(table.Row{l.Lap, l.Position, l.Time.String()})
		}
		t.Render()
	},
}

var pitstopsCmd = &cobra.Command{
	Use:   "pitstops [--season <year>] [--round <round>]",
	Short: "Shows the pit stop log for a race.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		stops, err := client.PitStops(cmd.Context(), *pitstopsSeason, *pitstopsRound, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch pit stops", err)
		}

		t := newTable()
		t.SetTitle(stops.Event.Name)
		t.AppendHeader(table.Row{"Driver", "Stop", "Lap", "Time of day", "Duration"})
		for _, s := range stops.Stops {
			t.AppendRow(table.Row{s.DriverID, s.Stop, s.Lap, s.Time, s.Duration.String()})
		}
		t.Render()
	},
}
