// Package p4 wraps the Perforce command line with depot path aliases,
// per-command timeouts and parsed output.
package p4

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimeout = 30 * time.Second
	// p4 print can pull large files; give it longer.
	printTimeout = 60 * time.Second

	configTimeout = 5 * time.Second
	infoTimeout   = 10 * time.Second
)

// Sentinel failures callers branch on with errors.Is.
var (
	ErrTimeout  = errors.New("p4 command timed out")
	ErrNotFound = errors.New("p4 command not found, is Perforce installed?")
)

// Runner executes p4 commands with a bounded timeout.
type Runner struct {
	// Timeout applies per invocation; zero means defaultTimeout.
	Timeout time.Duration
}

// Run executes `p4 args...` and returns stdout. A non-zero exit wraps
// stderr (or stdout when stderr is empty) into the error.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "p4", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", errors.Wrapf(ErrTimeout, "after %s", timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return "", errors.Wrapf(err, "p4 %s failed: %s", args[0], msg)
	}

	return stdout.String(), nil
}
