package cli

import (
	"fmt"

	"github.com/glorpus-work/dscache/internal/logger"
	"github.com/glorpus-work/dscache/pkg/config"
	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/glorpus-work/dscache/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	var (
		version string
		extract bool
	)

	cmd := &cobra.Command{
		Use:   "sync [OWNER/DATASET FILE...]",
		Short: "Synchronize dataset files",
		Long: `Check that a dataset exists, warn about versions newer than the requested
one and fetch the requested files into the cache. Archives can be extracted next
to the cached file with --extract.

Without arguments every dataset listed in the configuration is synchronized.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("expected a dataset handle followed by at least one file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args, version, extract)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Dataset version number (required with arguments)")
	cmd.Flags().BoolVar(&extract, "extract", false, "Extract downloaded archives into <file>.d")

	return cmd
}

func runSync(cmd *cobra.Command, args []string, rawVersion string, extract bool) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	requests, err := syncRequests(svc.cfg, args, rawVersion, extract)
	if err != nil {
		return err
	}

	hooks := orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		logger.Debug("sync "+e.Phase, logger.Fields{"id": e.ID, "msg": e.Msg})
	}}
	orch := svc.orchestrator(hooks)

	out := cmd.OutOrStdout()
	for _, req := range requests {
		results, err := orch.Sync(cmd.Context(), req, svc.authn)
		for _, r := range results {
			if r.ExtractedTo != "" {
				_, _ = fmt.Fprintf(out, "%s -> %s\n", r.Path, r.ExtractedTo)
				continue
			}
			_, _ = fmt.Fprintln(out, r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to sync %s: %w", req.Handle(), err)
		}
	}

	logger.Success("Datasets synchronized", logger.Fields{"count": len(requests)})
	return nil
}

// syncRequests builds the requests from the arguments, or from the configuration when there are none.
func syncRequests(cfg *config.Config, args []string, rawVersion string, extract bool) ([]orchestrator.SyncRequest, error) {
	if len(args) == 0 {
		if len(cfg.Datasets) == 0 {
			return nil, fmt.Errorf("no datasets given and none configured")
		}
		requests := make([]orchestrator.SyncRequest, 0, len(cfg.Datasets))
		for _, ds := range cfg.Datasets {
			owner, slug, err := dataset.ParseHandle(ds.Handle)
			if err != nil {
				return nil, err
			}
			requests = append(requests, orchestrator.SyncRequest{
				Owner:   owner,
				Dataset: slug,
				Version: ds.Version,
				Files:   ds.Files,
				Extract: ds.Extract || extract,
			})
		}
		return requests, nil
	}

	owner, slug, err := dataset.ParseHandle(args[0])
	if err != nil {
		return nil, err
	}
	if rawVersion == "" {
		return nil, fmt.Errorf("--version is required when a dataset is given")
	}
	version, err := dataset.ParseVersion(rawVersion)
	if err != nil {
		return nil, err
	}

	return []orchestrator.SyncRequest{{
		Owner:   owner,
		Dataset: slug,
		Version: version,
		Files:   args[1:],
		Extract: extract,
	}}, nil
}
