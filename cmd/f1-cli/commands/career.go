package commands

import (
	"strings"

	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(resolveCmd)
}

var careerCmd = &cobra.Command{
	Use:   "career <driver>",
	Short: "Shows a driver's career totals across wins, poles, titles, seasons and teams.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		driver, err := client.ResolveDriver(args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve driver", err)
		}
		career, err := client.Career(cmd.Context(), driver, fetchOpts()...)
		if err != nil {
			serviceutil.Fatal("failed to aggregate career", err)
		}

		t := newTable()
		t.SetTitle(career.Driver.FullName())
		t.AppendRow(table.Row{"Race wins", career.Wins})
		t.AppendRow(table.Row{"Pole positions", career.Poles})
		t.AppendRow(table.Row{"Championships", career.Championships.Total})
		t.AppendRow(table.Row{"Title years", strings.Join(career.Championships.Items, ", ")})
		t.AppendRow(table.Row{"Seasons", career.Seasons.Total})
		t.AppendRow(table.Row{"Teams", strings.Join(career.Teams.Items, ", ")})
		t.Render()
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>",
	Short: "Resolves a driver id, code, number or name fragment to the canonical record.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cleanup := createClient(cmd.Context())
		defer cleanup()

		driver, err := client.ResolveDriver(args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve driver", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Code", "No", "Name", "Born", "Nationality"})
		t.AppendRow(table.Row{
			driver.ID, driver.Code, driver.PermanentNumber,
			driver.FullName(), driver.DateOfBirth, driver.Nationality,
		})
		t.Render()
	},
}
