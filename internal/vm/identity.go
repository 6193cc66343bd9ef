package vm

import (
	"fmt"
	"os"
	"strings"
)

// pathSeparators are replaced when deriving a VM name.
var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

// Identity ties a VM to the project directory it was created for.
type Identity struct {
	// Name is the VirtualBox VM name.
	Name string

	// WorkDir is the absolute directory the name was derived from.
	WorkDir string
}

// DeriveName computes the VM name for dir: every path separator becomes
// '-' and prefix is prepended. Two paths differing only in '/' versus '\'
// map to the same name.
func DeriveName(prefix, dir string) string {
	return prefix + pathSeparators.Replace(dir)
}

// CurrentIdentity derives the identity of the process working directory.
func CurrentIdentity(prefix string) (Identity, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Identity{}, fmt.Errorf("get working directory: %w", err)
	}
	return Identity{Name: DeriveName(prefix, wd), WorkDir: wd}, nil
}
