package commands

import (
	"fmt"
	"time"

	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(nextCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Shows the current season's race calendar.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		schedule, err := client.Schedule(cmd.Context(), fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch the race calendar", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Round", "Race", "Circuit", "Country", "Date"})
		for _, e := range schedule.Events {
			t.AppendRow(table.Row{e.Round, e.Name, e.Circuit, e.Country, e.Date})
		}
		t.Render()
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Shows the next race and the countdown to lights out.",
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		next, err := client.NextRace(cmd.Context(), fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to fetch the next race", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Round", "Race", "Circuit", "Country", "Date", "Countdown"})
		t.AppendRow(table.Row{
			next.Event.Round,
			next.Event.Name,
			next.Event.Circuit,
			next.Event.Country,
			fmt.Sprintf("%s %s", next.Event.Date, next.Event.Time),
			next.Countdown.Round(time.Second).String(),
		})
		t.Render()
	},
}
