package guest

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	ran    []string
	failOn string
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	f.ran = append(f.ran, command)
	if f.failOn != "" && strings.Contains(command, f.failOn) {
		return "", errors.New("exit status 100")
	}
	return "", nil
}

func TestRunStepsInOrder(t *testing.T) {
	r := &fakeRunner{}
	steps := []Step{
		{Label: "list", Command: "ls /"},
		{Label: "update", Command: "sudo apt-get update"},
	}

	if err := RunSteps(context.Background(), r, steps); err != nil {
		t.Fatalf("RunSteps() error = %v", err)
	}
	if len(r.ran) != 2 || r.ran[0] != "ls /" || r.ran[1] != "sudo apt-get update" {
		t.Errorf("ran = %v", r.ran)
	}
}

func TestRunStepsStopsAtFirstFailure(t *testing.T) {
	r := &fakeRunner{failOn: "install"}
	steps := []Step{
		{Label: "update", Command: "sudo apt-get update"},
		{Label: "install", Command: "sudo apt-get --yes install git"},
		{Label: "clone", Command: "git clone repo"},
	}

	err := RunSteps(context.Background(), r, steps)
	if err == nil {
		t.Fatal("RunSteps() should fail")
	}
	if !strings.Contains(err.Error(), `"install"`) {
		t.Errorf("error = %q, should name the failing step", err)
	}
	for _, cmd := range r.ran {
		if strings.HasPrefix(cmd, "git clone") {
			t.Error("clone must not run after install failed")
		}
	}
}

func TestRunStepsEmpty(t *testing.T) {
	if err := RunSteps(context.Background(), &fakeRunner{}, nil); err != nil {
		t.Errorf("RunSteps(nil) error = %v", err)
	}
}
