package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
	"github.com/m-mizutani/trainctl/pkg/usecase"
)

func newResolver(m *mockGit) *usecase.BranchResolver {
	return &usecase.BranchResolver{
		Git:           m,
		Remote:        "origin",
		DefaultBranch: "main",
	}
}

var nextTrain = model.ReleaseVersion{Major: 149, Train: 4, Patch: 0}

func TestResolve_AlreadyOnTrainBranch(t *testing.T) {
	m := newMockGit()
	m.currentBranch = "train-4"

	branch, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
	gt.Equal(t, m.calls, []string{"pull origin train-4"})
}

func TestResolve_LocalBranchExists(t *testing.T) {
	m := newMockGit()
	m.localBranches["train-4"] = true

	branch, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
	gt.Equal(t, m.calls, []string{"checkout train-4", "pull origin train-4"})
}

func TestResolve_RemoteBranchExists(t *testing.T) {
	m := newMockGit()
	m.remoteHeads["train-4"] = true

	branch, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
	gt.Equal(t, m.calls, []string{"fetch origin train-4", "checkout --track origin/train-4"})
}

func TestResolve_CreateFromDefault(t *testing.T) {
	m := newMockGit()
	m.fetchErr = types.ErrRemoteRefMissing

	branch, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
	gt.Equal(t, m.calls, []string{
		"fetch origin train-4",
		"checkout main",
		"pull origin main",
		"checkout -b train-4",
	})
}

// The resolver must never create a branch that already exists locally
func TestResolve_NeverCreatesExistingBranch(t *testing.T) {
	m := newMockGit()
	m.localBranches["train-4"] = true

	_, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.NoError(t, err)
	for _, call := range m.calls {
		gt.True(t, !strings.HasPrefix(call, "checkout -b"))
	}
}

func TestResolve_FetchFailureIsFatal(t *testing.T) {
	m := newMockGit()
	m.fetchErr = goerr.New("permission denied", goerr.T(types.ErrTagGitCommand))

	_, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagGitCommand))
}

func TestResolve_DirtyTree(t *testing.T) {
	m := newMockGit()
	m.clean = false

	_, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagPrecondition))
}

func TestResolve_NoNewCommits(t *testing.T) {
	m := newMockGit()
	m.commitsSince = 0

	_, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagPrecondition))
}

func TestResolve_PatchOnDefaultBranchRejected(t *testing.T) {
	m := newMockGit()
	m.currentBranch = "main"

	next := model.ReleaseVersion{Major: 149, Train: 4, Patch: 3}
	_, err := newResolver(m).Resolve(context.Background(), "v149.4.2", model.KindPatch, next, &model.Report{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagPrecondition))
}

func TestResolve_PatchOnTrainBranchAllowed(t *testing.T) {
	m := newMockGit()
	m.currentBranch = "train-4"

	next := model.ReleaseVersion{Major: 149, Train: 4, Patch: 3}
	branch, err := newResolver(m).Resolve(context.Background(), "v149.4.2", model.KindPatch, next, &model.Report{})
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
}

func TestResolve_UnpushedDefaultRejectedForTrain(t *testing.T) {
	m := newMockGit()
	m.unpushed = 2

	_, err := newResolver(m).Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, &model.Report{})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagPrecondition))
}

func TestResolve_DryRunDowngradesPreconditions(t *testing.T) {
	m := newMockGit()
	m.clean = false
	m.commitsSince = 0

	r := newResolver(m)
	r.DryRun = true

	report := &model.Report{}
	branch, err := r.Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, report)
	gt.NoError(t, err)
	gt.Equal(t, branch, "train-4")
	gt.Equal(t, len(report.Errors), 2)
}

func TestResolve_DryRunSkipsMutations(t *testing.T) {
	m := newMockGit()
	m.fetchErr = types.ErrRemoteRefMissing

	r := newResolver(m)
	r.DryRun = true

	report := &model.Report{}
	_, err := r.Resolve(context.Background(), "v149.3.0", model.KindTrain, nextTrain, report)
	gt.NoError(t, err)

	// No mutating git operation actually ran
	gt.Equal(t, len(m.calls), 0)
	gt.Equal(t, report.Skipped, []string{
		"git fetch origin train-4",
		"git checkout main",
		"git pull origin main",
		"git checkout -b train-4",
	})
}
