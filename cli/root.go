// Package cli wires configuration, storage and the HTTP server behind the
// gyangroup command.
package cli

import (
	"fmt"
	"log/slog"

	"gyangroup/config"
	"gyangroup/logging"

	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "gyangroup",
		Short:         "Backend for the Gyan Group website and back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	load := func() (*config.Config, *slog.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("configuration error: %w", err)
		}
		return cfg, logging.Setup(cfg.Log.Level, cfg.Log.Format), nil
	}

	root.AddCommand(newServeCmd(load), newMigrateCmd(load), newVersionCmd())
	return root
}

type loader func() (*config.Config, *slog.Logger, error)

// Execute runs the CLI
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("gyangroup %s (built %s)\n", Version, BuildTime)
		},
	}
}
