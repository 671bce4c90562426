package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Provider fetches and refreshes skill repositories
type Provider interface {
	// Available reports whether the underlying tool can be run
	Available(ctx context.Context) bool

	// Clone fetches url into destPath; a failed clone leaves no destPath behind
	Clone(ctx context.Context, url, destPath string) error

	// Pull refreshes an existing clone
	Pull(ctx context.Context, repoPath string) error

	// CommitHash returns the checked-out commit, or "" when unknown
	CommitHash(ctx context.Context, repoPath string) string

	// RemoteURL returns the origin url of a clone, or "" when unknown
	RemoteURL(ctx context.Context, repoPath string) string
}

// Runner executes a git command and returns its stdout
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs a real binary through os/exec
type ExecRunner struct {
	Binary string
}

// Run implements Runner. Stderr is folded into the returned error.
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return out, fmt.Errorf("%s %s: timed out: %w", binary, firstArg(args), ctxErr)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return out, fmt.Errorf("%w: %s", err, msg)
	}
	return out, err
}

func firstArg(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-C" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
