// Package cmd provides the CLI commands for hitmatch.
package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-hit-matcher/config"
)

// Version is the hitmatch release.
const Version = "1.0.0"

// NewRootCmd creates the root command for the hitmatch CLI.
func NewRootCmd() *cobra.Command {
	var configPath string
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "hitmatch",
		Short: "Proximity, AND and sequence hit matching over token streams",
		Long: `hitmatch finds hits of multi-term query patterns in token streams.

Run without a subcommand to start the HTTP server, or use 'hitmatch match'
to match a single request read from a file or stdin.`,
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServe(cfg, opts)
		},
	}

	cmd.SetVersionTemplate("hitmatch version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	opts.bind(cmd)

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newMatchCmd(&configPath))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig returns the defaults, or the file at path when one is given.
func loadConfig(path string) (config.ServerConfig, error) {
	if path == "" {
		return config.DefaultServerConfig(), nil
	}
	cfg, err := config.LoadServerConfig(path)
	if err != nil {
		return config.ServerConfig{}, err
	}
	log.Printf("Loaded configuration from %s", path)
	return cfg, nil
}
