package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Boot strategies.
const (
	BootStrategyFixed = "fixed"
	BootStrategyPoll  = "poll"
)

// Config holds all v configuration.
type Config struct {
	// NamePrefix is prepended to the derived VM name.
	NamePrefix string `mapstructure:"name_prefix"`

	// Distro selects the bakerx image directory.
	Distro string `mapstructure:"distro"`

	// ImagePath overrides the base image location (empty = bakerx default for Distro).
	ImagePath string `mapstructure:"image_path"`

	// RequireImage makes a missing base image fatal before import.
	RequireImage bool `mapstructure:"require_image"`

	// MemoryMB is the RAM allocated to the VM.
	MemoryMB int `mapstructure:"memory_mb"`

	// CPUs is the number of virtual CPUs.
	CPUs int `mapstructure:"cpus"`

	// SSHHostPort is the host port forwarded to SSHGuestPort.
	SSHHostPort int `mapstructure:"ssh_host_port"`

	// SSHGuestPort is the SSH port inside the guest.
	SSHGuestPort int `mapstructure:"ssh_guest_port"`

	// SSHUser is the guest login used for commands and the interactive shell.
	SSHUser string `mapstructure:"ssh_user"`

	// SSHKeyPath is the private key used to authenticate (empty = bakerx key).
	SSHKeyPath string `mapstructure:"ssh_key_path"`

	// AppHostPort is the host port forwarded to AppGuestPort.
	AppHostPort int `mapstructure:"app_host_port"`

	// AppGuestPort is the application port inside the guest.
	AppGuestPort int `mapstructure:"app_guest_port"`

	// HostOnlyAdapter is the host-side adapter attached to NIC 2.
	HostOnlyAdapter string `mapstructure:"hostonly_adapter"`

	// HostOnlyInterface is the guest interface backing NIC 2.
	HostOnlyInterface string `mapstructure:"hostonly_interface"`

	// GuestAdditionsISO is attached as a DVD for the vboxsf module.
	GuestAdditionsISO string `mapstructure:"guest_additions_iso"`

	// ShareName is the VirtualBox shared folder name.
	ShareName string `mapstructure:"share_name"`

	// ShareGuestPath is where the shared folder is mounted in the guest.
	ShareGuestPath string `mapstructure:"share_guest_path"`

	// AppRepo is cloned into the guest during post-configuration.
	AppRepo string `mapstructure:"app_repo"`

	// AppDir is the directory AppRepo is cloned into.
	AppDir string `mapstructure:"app_dir"`

	// Packages are installed with apt-get during post-configuration.
	Packages []string `mapstructure:"packages"`

	// BootWait is the fixed boot delay, or the polling deadline.
	BootWait time.Duration `mapstructure:"boot_wait"`

	// BootStrategy is "fixed" or "poll".
	BootStrategy string `mapstructure:"boot_strategy"`

	// BootPollInterval is the delay between readiness probes.
	BootPollInterval time.Duration `mapstructure:"boot_poll_interval"`

	// VBoxManage is the VBoxManage executable.
	VBoxManage string `mapstructure:"vboxmanage"`

	// Timing prints a provisioning phase report.
	Timing bool `mapstructure:"timing"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with the stock VM layout.
func DefaultConfig() *Config {
	paths, err := GetPaths()
	if err != nil {
		// Fallback if we can't determine home directory
		paths = &Paths{
			BakerxDir: filepath.Join(".", ".bakerx"),
		}
	}

	return &Config{
		NamePrefix:        "V-",
		Distro:            "bionic",
		ImagePath:         "",
		RequireImage:      true,
		MemoryMB:          1024,
		CPUs:              1,
		SSHHostPort:       2800,
		SSHGuestPort:      22,
		SSHUser:           "vagrant",
		SSHKeyPath:        paths.KeyPath(),
		AppHostPort:       8080,
		AppGuestPort:      9000,
		HostOnlyAdapter:   defaultHostOnlyAdapter(),
		HostOnlyInterface: "enp0s8",
		GuestAdditionsISO: defaultGuestAdditionsISO(),
		ShareName:         "fileshare",
		ShareGuestPath:    "share/",
		AppRepo:           "https://github.com/CSC-DevOps/App",
		AppDir:            "App",
		Packages:          []string{"npm", "nodejs", "git"},
		BootWait:          60 * time.Second,
		BootStrategy:      BootStrategyFixed,
		BootPollInterval:  5 * time.Second,
		VBoxManage:        "VBoxManage",
		Timing:            false,
		Verbose:           false,
	}
}

// BaseImage returns the configured image path, defaulting to the bakerx
// location for Distro.
func (c *Config) BaseImage() string {
	if c.ImagePath != "" {
		return c.ImagePath
	}
	paths, err := GetPaths()
	if err != nil {
		return filepath.Join(".bakerx", ".persist", "images", c.Distro, "box.ovf")
	}
	return paths.ImagePath(c.Distro)
}

// Global holds the loaded configuration.
var Global *Config

// Load reads configuration from file, environment, and defaults.
func Load() error {
	cfg, err := load(viper.New())
	if err != nil {
		return err
	}
	Global = cfg
	return nil
}

func load(v *viper.Viper) (*Config, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to determine paths: %w", err)
	}

	defaults := DefaultConfig()
	v.SetDefault("name_prefix", defaults.NamePrefix)
	v.SetDefault("distro", defaults.Distro)
	v.SetDefault("image_path", defaults.ImagePath)
	v.SetDefault("require_image", defaults.RequireImage)
	v.SetDefault("memory_mb", defaults.MemoryMB)
	v.SetDefault("cpus", defaults.CPUs)
	v.SetDefault("ssh_host_port", defaults.SSHHostPort)
	v.SetDefault("ssh_guest_port", defaults.SSHGuestPort)
	v.SetDefault("ssh_user", defaults.SSHUser)
	v.SetDefault("ssh_key_path", defaults.SSHKeyPath)
	v.SetDefault("app_host_port", defaults.AppHostPort)
	v.SetDefault("app_guest_port", defaults.AppGuestPort)
	v.SetDefault("hostonly_adapter", defaults.HostOnlyAdapter)
	v.SetDefault("hostonly_interface", defaults.HostOnlyInterface)
	v.SetDefault("guest_additions_iso", defaults.GuestAdditionsISO)
	v.SetDefault("share_name", defaults.ShareName)
	v.SetDefault("share_guest_path", defaults.ShareGuestPath)
	v.SetDefault("app_repo", defaults.AppRepo)
	v.SetDefault("app_dir", defaults.AppDir)
	v.SetDefault("packages", defaults.Packages)
	v.SetDefault("boot_wait", defaults.BootWait)
	v.SetDefault("boot_strategy", defaults.BootStrategy)
	v.SetDefault("boot_poll_interval", defaults.BootPollInterval)
	v.SetDefault("vboxmanage", defaults.VBoxManage)
	v.SetDefault("timing", defaults.Timing)
	v.SetDefault("verbose", defaults.Verbose)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(paths.ConfigDir)
	v.AddConfigPath(paths.BakerxDir)

	// Environment variable support: V_MEMORY_MB, V_TIMING, etc.
	v.SetEnvPrefix("V")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - not an error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
