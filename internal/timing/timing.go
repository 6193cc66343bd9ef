// Package timing records how long each provisioning phase takes.
package timing

import (
	"fmt"
	"io"
	"time"
)

// Timer tracks durations of named phases. A nil *Timer is valid and
// records nothing, so callers can leave timing disabled.
type Timer struct {
	now    func() time.Time
	start  time.Time
	phases []Phase
}

// Phase is a timed phase with its outcome.
type Phase struct {
	Name     string
	Duration time.Duration
	Failed   bool
}

// New creates a new Timer starting from now.
func New() *Timer {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, start: now()}
}

// Track runs fn and records how long it took under name.
func (t *Timer) Track(name string, fn func() error) error {
	if t == nil {
		return fn()
	}
	begin := t.now()
	err := fn()
	t.phases = append(t.phases, Phase{
		Name:     name,
		Duration: t.now().Sub(begin),
		Failed:   err != nil,
	})
	return err
}

// Total returns the elapsed time since timer creation.
func (t *Timer) Total() time.Duration {
	if t == nil {
		return 0
	}
	return t.now().Sub(t.start)
}

// Phases returns all recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	return t.phases
}

// Report prints a timing report to the given writer.
func (t *Timer) Report(w io.Writer) {
	if t == nil {
		return
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "=== Provisioning Timing ===")
	for _, p := range t.phases {
		line := fmt.Sprintf("  %-20s %s", p.Name+":", formatDuration(p.Duration))
		if p.Failed {
			line += " (failed)"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  %-20s %s\n", "TOTAL:", formatDuration(t.Total()))
	fmt.Fprintln(w, "===========================")
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
