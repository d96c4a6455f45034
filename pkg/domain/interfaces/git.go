package interfaces

import (
	"context"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// GitClient defines the git operations the release workflow depends on.
// The branch-resolution decision tree is written against this interface
// so it can be tested deterministically with a stub implementation.
type GitClient interface {
	// CurrentBranch returns the name of the checked-out branch
	CurrentBranch(ctx context.Context) (string, error)

	// IsClean reports whether the working tree has no uncommitted changes
	IsClean(ctx context.Context) (bool, error)

	// LatestTag returns the most recent annotated tag reachable from HEAD
	LatestTag(ctx context.Context) (string, error)

	// CommitsSince counts commits on the current branch since the tag
	CommitsSince(ctx context.Context, tag string) (int, error)

	// UnpushedCommits counts commits on branch not yet on remote/branch
	UnpushedCommits(ctx context.Context, remote, branch string) (int, error)

	// LocalBranch probes for a local branch of the given name
	LocalBranch(ctx context.Context, name string) (model.BranchRef, error)

	// RemoteBranch probes the remote for a branch of the given name
	RemoteBranch(ctx context.Context, remote, name string) (model.BranchRef, error)

	// RemoteExists reports whether a remote of the given name is configured
	RemoteExists(ctx context.Context, name string) (bool, error)

	// RemoteURL returns the URL of the named remote
	RemoteURL(ctx context.Context, remote string) (string, error)

	// Checkout switches to an existing local branch
	Checkout(ctx context.Context, name string) error

	// CheckoutTrack creates a local branch tracking remote/name
	CheckoutTrack(ctx context.Context, remote, name string) error

	// CheckoutNew creates a new branch at HEAD and switches to it
	CheckoutNew(ctx context.Context, name string) error

	// Pull pulls branch from remote into the current branch
	Pull(ctx context.Context, remote, branch string) error

	// Fetch fetches a single branch from remote. Returns
	// types.ErrRemoteRefMissing when the remote has no such branch.
	Fetch(ctx context.Context, remote, branch string) error

	// Log returns "<hash> <subject>" lines for commits since tag,
	// optionally scoped to a subdirectory (empty dir means whole tree)
	Log(ctx context.Context, tag, dir string) (string, error)

	// StageAll stages every change under path
	StageAll(ctx context.Context, path string) error

	// Commit creates a commit with the given message
	Commit(ctx context.Context, message string) error

	// TagAnnotated creates an annotated tag with the given message
	TagAnnotated(ctx context.Context, tag, message string) error

	// PushBranch pushes branch to remote as branch:branch
	PushBranch(ctx context.Context, remote, branch string) error

	// PushTag pushes a single tag to remote
	PushTag(ctx context.Context, remote, tag string) error
}
