package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/samhoang/skillctl/internal/logger"
)

// DefaultRetryDelay is the base backoff between clone attempts
const DefaultRetryDelay = time.Second

// Timeouts bounds each kind of git invocation
type Timeouts struct {
	Check time.Duration // git --version
	Clone time.Duration // git clone
	Pull  time.Duration // git pull
	Query time.Duration // rev-parse, config --get
}

// DefaultTimeouts returns the timeouts used when none are configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Check: 5 * time.Second,
		Clone: 5 * time.Minute,
		Pull:  2 * time.Minute,
		Query: 10 * time.Second,
	}
}

// GitProvider handles git clone and pull operations
type GitProvider struct {
	runner       Runner
	timeouts     Timeouts
	cloneRetries int
	retryDelay   time.Duration
}

// GitOption configures a GitProvider
type GitOption func(*GitProvider)

// WithRunner replaces the subprocess runner
func WithRunner(r Runner) GitOption {
	return func(p *GitProvider) {
		p.runner = r
	}
}

// WithTimeouts sets per-operation timeouts; zero values keep the defaults
func WithTimeouts(t Timeouts) GitOption {
	return func(p *GitProvider) {
		if t.Check > 0 {
			p.timeouts.Check = t.Check
		}
		if t.Clone > 0 {
			p.timeouts.Clone = t.Clone
		}
		if t.Pull > 0 {
			p.timeouts.Pull = t.Pull
		}
		if t.Query > 0 {
			p.timeouts.Query = t.Query
		}
	}
}

// WithCloneRetries sets how many extra clone attempts follow a failure
func WithCloneRetries(n int, delay time.Duration) GitOption {
	return func(p *GitProvider) {
		if n > 0 {
			p.cloneRetries = n
		}
		p.retryDelay = delay
	}
}

// NewGitProvider creates a provider that shells out to binary
func NewGitProvider(binary string, opts ...GitOption) *GitProvider {
	p := &GitProvider{
		runner:     ExecRunner{Binary: binary},
		timeouts:   DefaultTimeouts(),
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GitProvider) run(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.G(ctx).WithField("args", strings.Join(args, " ")).Debug("running git")
	return p.runner.Run(ctx, args...)
}

func (p *GitProvider) Available(ctx context.Context) bool {
	_, err := p.run(ctx, p.timeouts.Check, "--version")
	return err == nil
}

func (p *GitProvider) Clone(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return &SourceError{Op: "git clone", Source: url, Err: err}
	}

	attempt := func() error {
		_, err := p.run(ctx, p.timeouts.Clone, "clone", "--depth", "1", url, destPath)
		if err != nil {
			os.RemoveAll(destPath)
		}
		return err
	}

	err := retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(uint(p.cloneRetries+1)),
		retry.Delay(p.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithField("url", url).Warnf("clone attempt %d failed, retrying", n+1)
		}),
	)
	if err != nil {
		os.RemoveAll(destPath)
		return &SourceError{Op: "git clone", Source: url, Err: fmt.Errorf("%w: %w", ErrCloneFailed, err)}
	}
	return nil
}

func (p *GitProvider) Pull(ctx context.Context, repoPath string) error {
	if _, err := p.run(ctx, p.timeouts.Pull, "-C", repoPath, "pull"); err != nil {
		return &SourceError{Op: "git pull", Source: repoPath, Err: fmt.Errorf("%w: %w", ErrPullFailed, err)}
	}
	return nil
}

func (p *GitProvider) CommitHash(ctx context.Context, repoPath string) string {
	out, err := p.run(ctx, p.timeouts.Query, "-C", repoPath, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (p *GitProvider) RemoteURL(ctx context.Context, repoPath string) string {
	out, err := p.run(ctx, p.timeouts.Query, "-C", repoPath, "config", "--get", "remote.origin.url")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ShortCommit abbreviates a commit SHA for display
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
