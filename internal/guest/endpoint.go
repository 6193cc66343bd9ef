// Package guest runs commands inside the VM over SSH.
package guest

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"golang.org/x/crypto/ssh"
)

// Endpoint describes how to reach the guest's SSH server.
type Endpoint struct {
	Host    string
	Port    int
	User    string
	KeyFile string
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Command renders the equivalent OpenSSH invocation.
func (e Endpoint) Command() string {
	return fmt.Sprintf("ssh -i %q -p %d -o StrictHostKeyChecking=no -o UserKnownHostsFile=/dev/null %s@%s",
		e.KeyFile, e.Port, e.User, e.Host)
}

// clientConfig builds an ssh.ClientConfig using the endpoint's private key.
// Host keys are not verified: every rebuild generates a new one.
func (e Endpoint) clientConfig() (*ssh.ClientConfig, error) {
	signer, err := loadSigner(e.KeyFile)
	if err != nil {
		return nil, err
	}
	return &ssh.ClientConfig{
		User:            e.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}, nil
}

// loadSigner reads and parses the private key at path.
func loadSigner(path string) (ssh.Signer, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("SSH key %s not found; pull an image with bakerx first", path)
		}
		return nil, fmt.Errorf("read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse SSH key %s: %w", path, err)
	}
	return signer, nil
}
