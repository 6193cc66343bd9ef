package guest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// Runner executes one shell command inside the guest.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// SSHRunner runs guest commands over a fresh SSH connection per call.
type SSHRunner struct {
	endpoint Endpoint
	output   io.Writer
}

// NewSSHRunner creates a runner for endpoint. Command output is copied to
// output as it arrives; pass io.Discard to only capture it.
func NewSSHRunner(endpoint Endpoint, output io.Writer) *SSHRunner {
	if output == nil {
		output = io.Discard
	}
	return &SSHRunner{endpoint: endpoint, output: output}
}

// dial opens an SSH client connection that honors ctx during the handshake.
func (r *SSHRunner) dial(ctx context.Context) (*ssh.Client, error) {
	config, err := r.endpoint.clientConfig()
	if err != nil {
		return nil, err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", r.endpoint.Address())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", r.endpoint.Address(), err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, r.endpoint.Address(), config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", r.endpoint.Address(), err)
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// Run executes command and returns its combined output. A non-zero exit
// status is returned as an error wrapping *ssh.ExitError.
func (r *SSHRunner) Run(ctx context.Context, command string) (string, error) {
	client, err := r.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	var buf bytes.Buffer
	out := &lockedWriter{w: io.MultiWriter(&buf, r.output)}
	session.Stdout = out
	session.Stderr = out

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		client.Close()
		<-done
		return out.String(&buf), ctx.Err()
	case err := <-done:
		if err != nil {
			return out.String(&buf), fmt.Errorf("run %q: %w", command, err)
		}
		return out.String(&buf), nil
	}
}

// lockedWriter serializes the stdout and stderr copies of one session.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// String reads buf under the writer's lock.
func (l *lockedWriter) String(buf *bytes.Buffer) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return buf.String()
}
