package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/interfaces"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
)

// BranchResolver decides the branch a release is built on and mutates
// the working copy to get there. All git access goes through the
// GitClient interface; existence probes run fresh on every invocation.
type BranchResolver struct {
	Git           interfaces.GitClient
	Remote        string
	DefaultBranch string
	DryRun        bool
}

// Resolve checks the release preconditions and walks the branch
// decision tree for the release being cut. It returns the name of the
// branch the release will be built on. Outside dry-run mode a violated
// precondition is fatal; in dry-run it is recorded on the report and
// resolution continues so the operator can inspect the whole plan.
func (r *BranchResolver) Resolve(ctx context.Context, lastTag string, kind model.ReleaseKind, next model.ReleaseVersion, report *model.Report) (string, error) {
	if err := r.checkPreconditions(ctx, lastTag, kind, report); err != nil {
		return "", err
	}

	localBranch := next.TrainBranch()

	current, err := r.Git.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	// 1. Already on the train branch: just bring it up to date
	if current == localBranch {
		if err := r.mutate(ctx, report, fmt.Sprintf("git pull %s %s", r.Remote, localBranch), func() error {
			return r.Git.Pull(ctx, r.Remote, localBranch)
		}); err != nil {
			return "", err
		}
		return localBranch, nil
	}

	// 2. Train branch exists locally: switch to it and pull
	local, err := r.Git.LocalBranch(ctx, localBranch)
	if err != nil {
		return "", err
	}
	if local.Exists {
		steps := []struct {
			desc string
			op   func() error
		}{
			{fmt.Sprintf("git checkout %s", localBranch), func() error { return r.Git.Checkout(ctx, localBranch) }},
			{fmt.Sprintf("git pull %s %s", r.Remote, localBranch), func() error { return r.Git.Pull(ctx, r.Remote, localBranch) }},
		}
		for _, s := range steps {
			if err := r.mutate(ctx, report, s.desc, s.op); err != nil {
				return "", err
			}
		}
		return localBranch, nil
	}

	// 3. Train branch may exist only on the remote: fetch and track it.
	// A missing remote ref is tolerated here and falls through to
	// branch creation.
	if err := r.mutate(ctx, report, fmt.Sprintf("git fetch %s %s", r.Remote, localBranch), func() error {
		if err := r.Git.Fetch(ctx, r.Remote, localBranch); err != nil {
			if errors.Is(err, types.ErrRemoteRefMissing) {
				ctxlog.From(ctx).Debug("train branch not on remote yet", "branch", localBranch)
				return nil
			}
			return err
		}
		return nil
	}); err != nil {
		return "", err
	}

	remote, err := r.Git.RemoteBranch(ctx, r.Remote, localBranch)
	if err != nil {
		return "", err
	}
	if remote.Exists {
		if err := r.mutate(ctx, report, fmt.Sprintf("git checkout --track %s/%s", r.Remote, localBranch), func() error {
			return r.Git.CheckoutTrack(ctx, r.Remote, localBranch)
		}); err != nil {
			return "", err
		}
		return localBranch, nil
	}

	// 4. Branch exists nowhere: create it from an up-to-date default branch
	steps := []struct {
		desc string
		op   func() error
	}{
		{fmt.Sprintf("git checkout %s", r.DefaultBranch), func() error { return r.Git.Checkout(ctx, r.DefaultBranch) }},
		{fmt.Sprintf("git pull %s %s", r.Remote, r.DefaultBranch), func() error { return r.Git.Pull(ctx, r.Remote, r.DefaultBranch) }},
		{fmt.Sprintf("git checkout -b %s", localBranch), func() error { return r.Git.CheckoutNew(ctx, localBranch) }},
	}
	for _, s := range steps {
		if err := r.mutate(ctx, report, s.desc, s.op); err != nil {
			return "", err
		}
	}
	return localBranch, nil
}

// mutate runs one mutating git operation, or records it as skipped in
// dry-run mode. Operations must run in tree order: later steps assume
// earlier ones succeeded.
func (r *BranchResolver) mutate(ctx context.Context, report *model.Report, desc string, op func() error) error {
	if r.DryRun {
		report.Skipf("%s", desc)
		return nil
	}
	return op()
}

func (r *BranchResolver) checkPreconditions(ctx context.Context, lastTag string, kind model.ReleaseKind, report *model.Report) error {
	fail := func(err error) error {
		if r.DryRun {
			report.Errorf("%s", err.Error())
			return nil
		}
		return err
	}

	clean, err := r.Git.IsClean(ctx)
	if err != nil {
		return err
	}
	if !clean {
		if err := fail(goerr.New("working tree has uncommitted changes",
			goerr.T(types.ErrTagPrecondition))); err != nil {
			return err
		}
	}

	count, err := r.Git.CommitsSince(ctx, lastTag)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := fail(goerr.New("no new commits since last release tag",
			goerr.T(types.ErrTagPrecondition), goerr.V("tag", lastTag))); err != nil {
			return err
		}
	}

	current, err := r.Git.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	if kind == model.KindPatch && current == r.DefaultBranch {
		if err := fail(goerr.New("patch releases must be cut from a train branch",
			goerr.T(types.ErrTagPrecondition), goerr.V("branch", current))); err != nil {
			return err
		}
	}

	// The unpushed check applies only to train releases: a patch on the
	// default branch is already rejected above.
	if kind == model.KindTrain && current == r.DefaultBranch {
		unpushed, err := r.Git.UnpushedCommits(ctx, r.Remote, r.DefaultBranch)
		if err != nil {
			return err
		}
		if unpushed > 0 {
			if err := fail(goerr.New("default branch has commits not pushed to the remote",
				goerr.T(types.ErrTagPrecondition),
				goerr.V("branch", current),
				goerr.V("unpushed", unpushed))); err != nil {
				return err
			}
		}
	}

	return nil
}
