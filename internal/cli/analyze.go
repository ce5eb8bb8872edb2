package cli

import (
	"strconv"

	"github.com/glorpus-work/dscache/pkg/analysis"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	var videos, categories string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank video categories by engagement",
		Long: `Compute the mean engagement per view of each category of a trending-videos
dataset. Engagement is likes + dislikes + 5 * comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := analysis.AnalyzeFiles(videos, categories)
			if err != nil {
				return err
			}

			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header([]string{"Category", "Videos", "Mean Engagement"})
			for _, r := range results {
				if err := table.Append([]string{
					r.Category,
					strconv.Itoa(r.Videos),
					strconv.FormatFloat(r.Mean, 'f', meanPrecision, 64),
				}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().StringVar(&videos, "videos", "", "Path to the videos CSV file (required)")
	cmd.Flags().StringVar(&categories, "categories", "", "Path to the category JSON file (required)")
	_ = cmd.MarkFlagRequired("videos")
	_ = cmd.MarkFlagRequired("categories")

	return cmd
}
