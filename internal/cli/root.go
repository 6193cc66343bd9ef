// Package cli provides the command-line interface for v.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "v",
	Short: "v - a VirtualBox development VM for the current project",
	Long: `v provisions a VirtualBox VM for the directory you run it in.

The VM is named after the working directory, imported from the bakerx
base image, wired up with NAT port forwards and a host-only network,
and given a read-only share of the project. Run 'v up' to build it and
'v ssh' to get a shell inside.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		switch cmd.Name() {
		case "version", "completion", "help":
			log.Setup(os.Stderr, verbose)
			return nil
		}
		if err := config.Load(); err != nil {
			return err
		}
		log.Setup(os.Stderr, verbose || config.Global.Verbose)

		problems := config.Validate(config.Global)
		if len(problems) > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), config.FormatValidationErrors(problems))
		}
		if config.HasFatal(problems) {
			return fmt.Errorf("invalid configuration")
		}
		return nil
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(statusCmd)
}
