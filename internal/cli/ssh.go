package cli

import (
	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/vm"
	"github.com/spf13/cobra"
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Open a shell in the VM, starting or provisioning it first",
	Long: `Connect to the VM for the current directory.

A stopped VM is started, a missing or aborted one is provisioned as with
'v up --force', and a running one is attached to directly.`,
	Args: cobra.NoArgs,
	RunE: runSSH,
}

func runSSH(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	if err := requireVBoxManage(cfg); err != nil {
		return err
	}

	s, err := newSession(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	connector := vm.NewConnector(s.provisioner(), s.runner)
	err = connector.Connect(cmd.Context())
	s.report(cmd.ErrOrStderr())
	return err
}
