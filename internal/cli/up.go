package cli

import (
	"github.com/javanstorm/devvm/internal/config"
	"github.com/spf13/cobra"
)

var upForce bool

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the VM for the current directory",
	Long: `Import the base image as a new VM named after the current directory,
boot it, and configure networking, packages and the shared folder.

A running VM is left alone unless --force is given. A stopped or aborted
VM is assumed to be a broken earlier build and is rebuilt.`,
	Args: cobra.NoArgs,
	RunE: runUp,
}

func init() {
	upCmd.Flags().BoolVarP(&upForce, "force", "f", false, "Destroy and rebuild a running VM")
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	if err := requireVBoxManage(cfg); err != nil {
		return err
	}

	s, err := newSession(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.report(cmd.ErrOrStderr())

	return s.provisioner().Up(cmd.Context(), upForce)
}
