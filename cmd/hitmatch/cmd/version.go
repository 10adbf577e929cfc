package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if shortOutput {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hitmatch %s (%s)\n", Version, runtime.Version())
			return err
		},
	}

	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
