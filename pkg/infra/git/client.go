package git

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
)

// Runner executes one git invocation in dir and returns stdout and
// stderr separately. Injectable so tests can assert argument
// construction without a real repository.
type Runner func(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)

// Client invokes the git tool as a subprocess. Every call blocks until
// the subprocess exits; there are no timeouts beyond the context.
type Client struct {
	dir    string
	runner Runner
}

// Option configures Client
type Option func(*Client)

// WithRunner replaces the subprocess runner, primarily for tests
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// New creates a git client operating in dir. It validates that dir is
// inside a git working copy.
func New(ctx context.Context, dir string, opts ...Option) (*Client, error) {
	c := &Client{
		dir:    dir,
		runner: execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, _, err := c.runner(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return nil, goerr.Wrap(err, "not inside a git working copy",
			goerr.T(types.ErrTagConfig), goerr.V("dir", dir))
	}
	return c, nil
}

func execRunner(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimRight(stdout.String(), "\n"), stderr.String(), err
}

// run executes git with args, logging the invocation and its purpose
func (c *Client) run(ctx context.Context, purpose string, args ...string) (string, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("exec git", "args", args, "purpose", purpose)

	stdout, stderr, err := c.runner(ctx, c.dir, args...)
	if err != nil {
		return stdout, goerr.Wrap(err, "git command failed",
			goerr.T(types.ErrTagGitCommand),
			goerr.V("args", args),
			goerr.V("stderr", stderr),
		)
	}
	return stdout, nil
}

// CurrentBranch returns the name of the checked-out branch
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "query current branch", "rev-parse", "--abbrev-ref", "HEAD")
}

// IsClean reports whether the working tree has no uncommitted changes
func (c *Client) IsClean(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "check working tree status", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// LatestTag returns the most recent tag reachable from HEAD
func (c *Client) LatestTag(ctx context.Context) (string, error) {
	return c.run(ctx, "find last release tag", "describe", "--tags", "--abbrev=0")
}

// CommitsSince counts commits on the current branch since tag
func (c *Client) CommitsSince(ctx context.Context, tag string) (int, error) {
	out, err := c.run(ctx, "count commits since last tag", "rev-list", "--count", tag+"..HEAD")
	if err != nil {
		return 0, err
	}
	return parseCount(out)
}

// UnpushedCommits counts commits on branch not present on remote/branch
func (c *Client) UnpushedCommits(ctx context.Context, remote, branch string) (int, error) {
	out, err := c.run(ctx, "count unpushed commits", "rev-list", "--count", remote+"/"+branch+".."+branch)
	if err != nil {
		return 0, err
	}
	return parseCount(out)
}

func parseCount(out string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, goerr.Wrap(err, "unexpected rev-list output",
			goerr.T(types.ErrTagGitCommand), goerr.V("output", out))
	}
	return n, nil
}

// LocalBranch probes the local branch listing for name
func (c *Client) LocalBranch(ctx context.Context, name string) (model.BranchRef, error) {
	ref := model.BranchRef{Name: name, Scope: model.ScopeLocal}
	out, err := c.run(ctx, "list local branches", "branch", "--list", name)
	if err != nil {
		return ref, err
	}
	ref.Exists = strings.TrimSpace(out) != ""
	return ref, nil
}

// RemoteBranch probes the remote branch listing for name. ls-remote is
// used so the probe reflects the remote itself, not stale tracking refs.
func (c *Client) RemoteBranch(ctx context.Context, remote, name string) (model.BranchRef, error) {
	ref := model.BranchRef{Name: name, Scope: model.ScopeRemote}
	out, err := c.run(ctx, "list remote branches", "ls-remote", "--heads", remote, name)
	if err != nil {
		return ref, err
	}
	ref.Exists = strings.TrimSpace(out) != ""
	return ref, nil
}

// RemoteExists reports whether a remote of the given name is configured
func (c *Client) RemoteExists(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "list remotes", "remote")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// RemoteURL returns the URL of the named remote
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	return c.run(ctx, "query remote URL", "remote", "get-url", remote)
}

// Checkout switches to an existing local branch
func (c *Client) Checkout(ctx context.Context, name string) error {
	_, err := c.run(ctx, "checkout branch", "checkout", name)
	return err
}

// CheckoutTrack creates a local branch tracking remote/name
func (c *Client) CheckoutTrack(ctx context.Context, remote, name string) error {
	_, err := c.run(ctx, "checkout with tracking", "checkout", "--track", remote+"/"+name)
	return err
}

// CheckoutNew creates a new branch at HEAD and switches to it
func (c *Client) CheckoutNew(ctx context.Context, name string) error {
	_, err := c.run(ctx, "create branch", "checkout", "-b", name)
	return err
}

// Pull pulls branch from remote into the current branch
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "pull branch", "pull", remote, branch)
	return err
}

// Fetch fetches a single branch from remote. A "couldn't find remote
// ref" failure means the branch does not exist on the remote yet; that
// case is reported as types.ErrRemoteRefMissing so callers can fall
// through to branch creation. Any other failure is fatal.
func (c *Client) Fetch(ctx context.Context, remote, branch string) error {
	logger := ctxlog.From(ctx)
	logger.Debug("exec git", "args", []string{"fetch", remote, branch}, "purpose", "fetch remote branch")

	_, stderr, err := c.runner(ctx, c.dir, "fetch", remote, branch)
	if err != nil {
		if strings.Contains(stderr, "couldn't find remote ref") {
			return goerr.Wrap(types.ErrRemoteRefMissing, "fetch",
				goerr.V("remote", remote), goerr.V("branch", branch))
		}
		return goerr.Wrap(err, "git fetch failed",
			goerr.T(types.ErrTagGitCommand),
			goerr.V("remote", remote),
			goerr.V("branch", branch),
			goerr.V("stderr", stderr),
		)
	}
	return nil
}

// Log returns "<hash> <subject>" lines for commits since tag, scoped to
// dir when dir is non-empty
func (c *Client) Log(ctx context.Context, tag, dir string) (string, error) {
	args := []string{"log", "--pretty=format:%H %s", tag + "..HEAD"}
	if dir != "" {
		args = append(args, "--", dir)
	}
	return c.run(ctx, "collect commit log", args...)
}

// StageAll stages every change under path
func (c *Client) StageAll(ctx context.Context, path string) error {
	_, err := c.run(ctx, "stage changes", "add", "-A", path)
	return err
}

// Commit creates a commit with the given message
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit release", "commit", "-m", message)
	return err
}

// TagAnnotated creates an annotated tag with the given message
func (c *Client) TagAnnotated(ctx context.Context, tag, message string) error {
	_, err := c.run(ctx, "create annotated tag", "tag", "-a", tag, "-m", message)
	return err
}

// PushBranch pushes branch to remote as branch:branch
func (c *Client) PushBranch(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "push release branch", "push", remote, branch+":"+branch)
	return err
}

// PushTag pushes a single tag to remote
func (c *Client) PushTag(ctx context.Context, remote, tag string) error {
	_, err := c.run(ctx, "push release tag", "push", remote, tag)
	return err
}

// WebURL converts a remote URL to the browsable repository URL used for
// compare and commit links. SSH forms like git@host:owner/repo.git are
// rewritten to https and a trailing .git suffix is dropped.
func WebURL(remoteURL string) string {
	url := strings.TrimSpace(remoteURL)
	if after, ok := strings.CutPrefix(url, "git@"); ok {
		url = "https://" + strings.Replace(after, ":", "/", 1)
	}
	if after, ok := strings.CutPrefix(url, "ssh://git@"); ok {
		url = "https://" + after
	}
	return strings.TrimSuffix(url, ".git")
}
