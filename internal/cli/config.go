package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/glorpus-work/dscache/internal/logger"
	"github.com/glorpus-work/dscache/pkg/config"
	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and modify dscache configuration settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigGetCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration settings and configured datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration key to a specific value",
		Args:  cobra.ExactArgs(setCommandArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Long:  "Get the value of a specific configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  "Create a default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")

	return cmd
}

func runConfigShow(out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings := cfg.ToMap()
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := tablewriter.NewTable(out)
	table.Header([]string{"Setting", "Value"})
	for _, key := range keys {
		if err := table.Append([]string{key, settings[key]}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nDatasets (%d):\n", len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		extract := ""
		if ds.Extract {
			extract = " (extract)"
		}
		_, _ = fmt.Fprintf(out, "  %s@%d: %s%s\n", ds.Handle, ds.Version, strings.Join(ds.Files, ", "), extract)
	}

	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to set configuration value: %w", err)
	}

	configPath := getConfigPath()
	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Configuration updated", logger.Fields{"key": key, "value": value})
	return nil
}

func runConfigGet(out io.Writer, key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := cfg.GetValue(key)
	if err != nil {
		return fmt.Errorf("failed to get configuration value: %w", err)
	}

	_, _ = fmt.Fprintln(out, value)
	return nil
}

func runConfigInit(force bool) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite): %w", configPath, errors.ErrConfigFileExists)
	}

	if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save default configuration: %w", err)
	}

	logger.Success("Configuration file created", logger.Fields{"path": configPath})
	return nil
}
