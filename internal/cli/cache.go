package cli

import (
	"fmt"

	"github.com/glorpus-work/dscache/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the dataset cache",
		Long:  "Show information about the cached dataset files",
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display size and file counts per cached dataset",
		RunE:  runCacheInfo,
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache directory",
		RunE:  runCacheDir,
	}
}

func loadCacheOperation() (*cache.CacheOperation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewCacheOperation(cache.NewManager(cfg.GetDatasetsDir())), nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	op, err := loadCacheOperation()
	if err != nil {
		return err
	}

	info, err := op.GetInfo()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), info)
	return nil
}

func runCacheDir(cmd *cobra.Command, _ []string) error {
	op, err := loadCacheOperation()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), op.GetDirectory())
	return nil
}
