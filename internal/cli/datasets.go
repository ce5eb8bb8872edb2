package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/dscache/pkg/dataset"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDatasetsCmd creates the datasets command for querying the remote API.
func NewDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Query remote datasets",
		Long:  "List the datasets of an owner or show the versions of one dataset",
	}

	cmd.AddCommand(
		newDatasetsListCmd(),
		newDatasetsViewCmd(),
	)

	return cmd
}

func newDatasetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list OWNER",
		Short: "List the datasets of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices()
			if err != nil {
				return err
			}
			list, err := svc.api.ListByOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderDatasets(cmd.OutOrStdout(), list)
		},
	}
}

func newDatasetsViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view OWNER/DATASET",
		Short: "Show the versions of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, slug, err := dataset.ParseHandle(args[0])
			if err != nil {
				return err
			}
			svc, err := loadServices()
			if err != nil {
				return err
			}
			details, err := svc.api.View(cmd.Context(), owner, slug)
			if err != nil {
				return err
			}
			return renderVersions(cmd.OutOrStdout(), details)
		},
	}
}

func renderDatasets(out io.Writer, list []dataset.Details) error {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "No datasets found.")
		return nil
	}

	table := tablewriter.NewTable(out)
	table.Header([]string{"Ref", "Title", "Version", "Size"})
	for _, d := range list {
		if err := table.Append([]string{
			d.Ref,
			d.Title,
			strconv.Itoa(d.CurrentVersionNumber),
			humanize.IBytes(uint64(d.TotalBytes)),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderVersions(out io.Writer, d *dataset.Details) error {
	_, _ = fmt.Fprintf(out, "%s (current version %d)\n", d.Ref, d.CurrentVersionNumber)
	if len(d.Versions) == 0 {
		return nil
	}

	table := tablewriter.NewTable(out)
	table.Header([]string{"Version", "Notes"})
	for _, v := range d.Versions {
		if err := table.Append([]string{strconv.Itoa(v.VersionNumber), v.Notes()}); err != nil {
			return err
		}
	}
	return table.Render()
}
