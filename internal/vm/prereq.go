package vm

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Prerequisite is an external tool the host must provide.
type Prerequisite struct {
	Name        string            // Tool name (e.g., "VBoxManage")
	Command     string            // Command looked up in PATH
	Packages    map[string]string // host OS -> install hint
	Description string
}

// Hint returns how to install p on hostOS.
func (p Prerequisite) Hint(hostOS string) string {
	if pkg, ok := p.Packages[hostOS]; ok && pkg != "" {
		return pkg
	}
	if pkg, ok := p.Packages["default"]; ok {
		return pkg
	}
	return fmt.Sprintf("install %s manually", p.Name)
}

// VBoxManagePrerequisite describes the configured VBoxManage executable.
func VBoxManagePrerequisite(binary string) Prerequisite {
	return Prerequisite{
		Name:        "VBoxManage",
		Command:     binary,
		Description: "Create and control VirtualBox machines",
		Packages: map[string]string{
			"arch":      "sudo pacman -S virtualbox",
			"manjaro":   "sudo pacman -S virtualbox",
			"ubuntu":    "sudo apt-get install virtualbox",
			"debian":    "sudo apt-get install virtualbox",
			"linuxmint": "sudo apt-get install virtualbox",
			"pop":       "sudo apt-get install virtualbox",
			"fedora":    "sudo dnf install VirtualBox",
			"macos":     "brew install --cask virtualbox",
			"windows":   "winget install Oracle.VirtualBox",
		},
	}
}

// HostPrerequisites lists every tool v expects on the host.
func HostPrerequisites(vboxmanage string) []Prerequisite {
	return []Prerequisite{
		VBoxManagePrerequisite(vboxmanage),
		{
			Name:        "bakerx",
			Command:     "bakerx",
			Description: "Pull base images into ~/.bakerx",
			Packages: map[string]string{
				"default": "npm install -g ottomatica/bakerx",
			},
		},
	}
}

// Missing returns the prerequisites that are not on PATH.
func Missing(prereqs []Prerequisite) []Prerequisite {
	var missing []Prerequisite
	for _, p := range prereqs {
		if _, err := exec.LookPath(p.Command); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// FormatMissing renders missing prerequisites with install hints for the host.
func FormatMissing(missing []Prerequisite) string {
	hostOS := detectHostOS()
	var b strings.Builder
	for _, p := range missing {
		fmt.Fprintf(&b, "  %s not found (%s): %s\n", p.Name, p.Description, p.Hint(hostOS))
	}
	return b.String()
}

// detectHostOS returns the host OS family.
func detectHostOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	}

	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "linux"
	}
	return parseOSRelease(string(data))
}

// parseOSRelease picks ID, falling back to the first known ID_LIKE parent.
func parseOSRelease(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if id, ok := strings.CutPrefix(line, "ID="); ok {
			return strings.Trim(id, "\"")
		}
	}

	for _, line := range strings.Split(content, "\n") {
		idLike, ok := strings.CutPrefix(line, "ID_LIKE=")
		if !ok {
			continue
		}
		switch {
		case strings.Contains(idLike, "arch"):
			return "arch"
		case strings.Contains(idLike, "debian"), strings.Contains(idLike, "ubuntu"):
			return "debian"
		case strings.Contains(idLike, "fedora"), strings.Contains(idLike, "rhel"):
			return "fedora"
		}
	}

	return "linux"
}
