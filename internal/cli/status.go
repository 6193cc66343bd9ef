package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/javanstorm/devvm/internal/config"
	"github.com/javanstorm/devvm/internal/vm"
	"github.com/javanstorm/devvm/pkg/hypervisor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the VM for the current directory",
	Long:  `Display the derived VM name, its VirtualBox state, the base image and how to reach it over SSH.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusFormat string

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "output", "o", "text", "Output format: text or yaml")
}

// statusReport is what `v status` prints.
type statusReport struct {
	Name         string   `yaml:"name"`
	Directory    string   `yaml:"directory"`
	State        string   `yaml:"state"`
	StateError   string   `yaml:"state_error,omitempty"`
	Image        string   `yaml:"image"`
	ImagePresent bool     `yaml:"image_present"`
	SSH          string   `yaml:"ssh"`
	App          string   `yaml:"app"`
	Missing      []string `yaml:"missing_tools,omitempty"`

	missing []vm.Prerequisite
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	id, err := vm.CurrentIdentity(cfg.NamePrefix)
	if err != nil {
		return err
	}
	report := collectStatus(cmd.Context(), cfg, id, newHypervisor(cfg))
	return writeStatus(cmd.OutOrStdout(), report, statusFormat)
}

// collectStatus gathers the report with a single state query.
func collectStatus(ctx context.Context, cfg *config.Config, id vm.Identity, client hypervisor.Client) statusReport {
	report := statusReport{
		Name:      id.Name,
		Directory: id.WorkDir,
		Image:     cfg.BaseImage(),
		SSH:       endpoint(cfg).Command(),
		App:       fmt.Sprintf("http://localhost:%d", cfg.AppHostPort),
	}

	state, err := client.Show(ctx, id.Name)
	report.State = state.String()
	if err != nil {
		report.StateError = err.Error()
	}

	if _, err := os.Stat(report.Image); err == nil {
		report.ImagePresent = true
	}

	report.missing = vm.Missing(vm.HostPrerequisites(cfg.VBoxManage))
	for _, p := range report.missing {
		report.Missing = append(report.Missing, p.Name)
	}
	return report
}

func writeStatus(w io.Writer, report statusReport, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(w, "VM:        %s\n", report.Name)
	fmt.Fprintf(w, "Directory: %s\n", report.Directory)
	if report.StateError != "" {
		fmt.Fprintf(w, "State:     %s (%s)\n", report.State, report.StateError)
	} else {
		fmt.Fprintf(w, "State:     %s\n", report.State)
	}
	if report.ImagePresent {
		fmt.Fprintf(w, "Image:     %s\n", report.Image)
	} else {
		fmt.Fprintf(w, "Image:     %s (missing)\n", report.Image)
	}
	fmt.Fprintf(w, "SSH:       %s\n", report.SSH)
	fmt.Fprintf(w, "App:       %s\n", report.App)

	if len(report.missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing host tools:")
		fmt.Fprint(w, vm.FormatMissing(report.missing))
	}
	return nil
}
