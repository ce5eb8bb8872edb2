package cli

import (
	"fmt"

	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "fetch OWNER/DATASET FILE...",
		Short: "Download dataset files into the cache",
		Long: `Download one or more files of a dataset version into the local cache.
A cached file is downloaded again only when the remote copy is newer or its
size differs. The local path of every file is printed on success.`,
		Args: cobra.MinimumNArgs(minFileArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, version)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Dataset version number, e.g. 115 (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, rawVersion string) error {
	owner, slug, err := dataset.ParseHandle(args[0])
	if err != nil {
		return err
	}
	version, err := dataset.ParseVersion(rawVersion)
	if err != nil {
		return err
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	for _, name := range args[1:] {
		ref := dataset.FileRef{Owner: owner, Dataset: slug, FileName: name, Version: version}
		path, err := svc.dl.Fetch(cmd.Context(), ref, svc.authn)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", ref, err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
