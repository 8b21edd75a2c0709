package commands

import (
	"log/slog"

	"f1stats-backend/lib/ergast"
	"f1stats-backend/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(flushCacheCmd)
	rootCmd.AddCommand(updateDriversCmd)
}

var flushCacheCmd = &cobra.Command{
	Use:   "flush-cache",
	Short: "Drops every cached upstream response.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openCache()
		defer store.Close()

		if err := store.Flush(); err != nil {
			serviceutil.Fatal("failed to flush the response cache", err)
		}
		slog.Info("response cache flushed")
	},
}

var updateDriversCmd = &cobra.Command{
	Use:   "update-drivers",
	Short: "Refetches the driver roster, replacing the cached copy.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openCache()
		defer store.Close()

		client := ergast.NewClient(ergast.ClientOptions{Cache: store})
		roster, err := client.AllDrivers(cmd.Context(), ergast.SkipCache())
		if err != nil {
			serviceutil.Fatal("failed to refresh the driver roster", err)
		}
		slog.Info("driver roster refreshed", "drivers", len(roster))
	},
}
