// Package config provides configuration management for v.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds host directory paths used by v.
type Paths struct {
	// BakerxDir is where bakerx keeps images and the insecure key.
	// All platforms: ~/.bakerx
	BakerxDir string

	// ConfigDir is the directory searched for config.yaml.
	// macOS: ~/Library/Application Support/v
	// Linux: ~/.config/v (or XDG_CONFIG_HOME)
	ConfigDir string
}

// GetPaths returns platform-aware paths.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	p := &Paths{
		BakerxDir: filepath.Join(home, ".bakerx"),
	}

	switch runtime.GOOS {
	case "darwin":
		p.ConfigDir = filepath.Join(home, "Library", "Application Support", "v")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			p.ConfigDir = filepath.Join(appData, "v")
		} else {
			p.ConfigDir = filepath.Join(home, "AppData", "Roaming", "v")
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			p.ConfigDir = filepath.Join(xdgConfig, "v")
		} else {
			p.ConfigDir = filepath.Join(home, ".config", "v")
		}
	}

	return p, nil
}

// ImagePath returns the bakerx box.ovf location for distro.
func (p *Paths) ImagePath(distro string) string {
	return filepath.Join(p.BakerxDir, ".persist", "images", distro, "box.ovf")
}

// KeyPath returns the bakerx insecure private key location.
func (p *Paths) KeyPath() string {
	return filepath.Join(p.BakerxDir, "insecure_private_key")
}

// defaultHostOnlyAdapter is the name VirtualBox gives the first host-only adapter.
func defaultHostOnlyAdapter() string {
	if runtime.GOOS == "windows" {
		return "VirtualBox Host-Only Ethernet Adapter"
	}
	return "vboxnet0"
}

// defaultGuestAdditionsISO is where the VirtualBox installer puts the ISO.
func defaultGuestAdditionsISO() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files\Oracle\VirtualBox\VBoxGuestAdditions.iso`
	case "darwin":
		return "/Applications/VirtualBox.app/Contents/MacOS/VBoxGuestAdditions.iso"
	default:
		return "/usr/share/virtualbox/VBoxGuestAdditions.iso"
	}
}
