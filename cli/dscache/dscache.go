package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/dscache/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dscache",
		Short: "A local cache for remote dataset files",
		Long: `dscache keeps versioned dataset files in a local cache with:
- fetch and sync: download files only when the remote copy changed
- datasets: list and inspect published datasets
- analyze: rank video categories by engagement`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	cmd.AddCommand(
		cli.NewFetchCmd(),
		cli.NewSyncCmd(),
		cli.NewDatasetsCmd(),
		cli.NewCacheCmd(),
		cli.NewConfigCmd(),
		cli.NewAnalyzeCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
