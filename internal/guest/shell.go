package guest

import (
	"context"
	"errors"
	"fmt"

	"github.com/javanstorm/devvm/internal/terminal"
	"golang.org/x/crypto/ssh"
)

// Interactive opens a login shell on the guest wired to the local terminal.
// It returns when the remote shell exits; a non-zero exit status is returned
// as *ssh.ExitError.
func (r *SSHRunner) Interactive(ctx context.Context) error {
	client, err := r.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	console := terminal.Current()
	session.Stdin = console.Stdin()
	session.Stdout = console.Stdout()
	session.Stderr = console.Stderr()

	if terminal.IsTTY() {
		width, height, err := console.Size()
		if err != nil {
			width, height = 80, 24
		}

		modes := ssh.TerminalModes{
			ssh.ECHO:          1,
			ssh.TTY_OP_ISPEED: 14400,
			ssh.TTY_OP_OSPEED: 14400,
		}
		if err := session.RequestPty(terminal.Term(), height, width, modes); err != nil {
			return fmt.Errorf("request pty: %w", err)
		}

		restore, err := console.SetRaw()
		if err != nil {
			return fmt.Errorf("set raw mode: %w", err)
		}
		defer restore()

		stop := console.WatchResize(ctx, func(w, h int) {
			_ = session.WindowChange(h, w)
		})
		defer stop()
	}

	if err := session.Shell(); err != nil {
		return fmt.Errorf("start shell: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	select {
	case <-ctx.Done():
		client.Close()
		return ctx.Err()
	case err := <-done:
		var exitMissing *ssh.ExitMissingError
		if errors.As(err, &exitMissing) {
			return nil
		}
		return err
	}
}
