package commands

import (
	"context"
	"fmt"
	"os"

	"f1stats-backend/lib/drivers"
	"f1stats-backend/lib/ergast"
	"f1stats-backend/lib/fetchcache"
	"f1stats-backend/lib/restyutil"
	"f1stats-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "f1-cli",
	Short: "f1-cli queries Formula 1 statistics from the terminal.",
}

var (
	cacheDir *string
	noCache  *bool
	dumpHttp *string
)

func init() {
	cacheDir = rootCmd.PersistentFlags().String(
		"cache-dir", ".dev/fetchcache", "The directory holding the response cache.")
	noCache = rootCmd.PersistentFlags().Bool(
		"no-cache", false, "Bypass the response cache and refetch everything.")
	dumpHttp = rootCmd.PersistentFlags().String(
		"dump-http", "", "Dump upstream requests and responses into the given directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fetchOpts() []ergast.FetchOption {
	if *noCache {
		return []ergast.FetchOption{ergast.SkipCache()}
	}
	return nil
}

func openCache() *fetchcache.Store {
	store, err := fetchcache.Open(*cacheDir)
	if err != nil {
		serviceutil.Fatal("failed to open response cache", err)
	}
	return store
}

// createClient opens the cache, builds the upstream client and loads
// the driver roster so identifiers resolve. The returned cleanup
// closes the cache.
func createClient(ctx context.Context) (*ergast.Client, func()) {
	store := openCache()
	opts := ergast.ClientOptions{Cache: store}
	if *dumpHttp != "" {
		opts.InstrumentOutput = restyutil.NewFilesystemOutput(*dumpHttp)
	}
	client := ergast.NewClient(opts)

	roster, err := client.AllDrivers(ctx, fetchOpts()...)
	if err != nil {
		serviceutil.Fatal("failed to load driver roster", err)
	}
	client.SetResolver(drivers.NewSet(roster))

	return client, func() {
		if err := store.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
