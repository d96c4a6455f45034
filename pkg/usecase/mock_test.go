package usecase_test

import (
	"context"
	"fmt"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// mockGit is a scripted GitClient recording every issued command so
// tests can assert the exact operation sequence.
type mockGit struct {
	calls []string

	currentBranch string
	clean         bool
	latestTag     string
	commitsSince  int
	unpushed      int
	localBranches map[string]bool
	remoteHeads   map[string]bool
	remotes       map[string]bool
	remoteURL     string
	logs          map[string]string // dir -> raw log output

	fetchErr      error
	pushBranchErr error
	pushTagErr    error
}

func newMockGit() *mockGit {
	return &mockGit{
		currentBranch: "main",
		clean:         true,
		latestTag:     "v149.3.0",
		commitsSince:  3,
		localBranches: map[string]bool{},
		remoteHeads:   map[string]bool{},
		remotes:       map[string]bool{"origin": true},
		remoteURL:     "git@github.com:acme/trains.git",
		logs:          map[string]string{},
	}
}

func (m *mockGit) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockGit) CurrentBranch(ctx context.Context) (string, error) {
	return m.currentBranch, nil
}

func (m *mockGit) IsClean(ctx context.Context) (bool, error) {
	return m.clean, nil
}

func (m *mockGit) LatestTag(ctx context.Context) (string, error) {
	return m.latestTag, nil
}

func (m *mockGit) CommitsSince(ctx context.Context, tag string) (int, error) {
	return m.commitsSince, nil
}

func (m *mockGit) UnpushedCommits(ctx context.Context, remote, branch string) (int, error) {
	return m.unpushed, nil
}

func (m *mockGit) LocalBranch(ctx context.Context, name string) (model.BranchRef, error) {
	return model.BranchRef{Name: name, Exists: m.localBranches[name], Scope: model.ScopeLocal}, nil
}

func (m *mockGit) RemoteBranch(ctx context.Context, remote, name string) (model.BranchRef, error) {
	return model.BranchRef{Name: name, Exists: m.remoteHeads[name], Scope: model.ScopeRemote}, nil
}

func (m *mockGit) RemoteExists(ctx context.Context, name string) (bool, error) {
	return m.remotes[name], nil
}

func (m *mockGit) RemoteURL(ctx context.Context, remote string) (string, error) {
	return m.remoteURL, nil
}

func (m *mockGit) Checkout(ctx context.Context, name string) error {
	m.record("checkout %s", name)
	m.currentBranch = name
	return nil
}

func (m *mockGit) CheckoutTrack(ctx context.Context, remote, name string) error {
	m.record("checkout --track %s/%s", remote, name)
	m.currentBranch = name
	return nil
}

func (m *mockGit) CheckoutNew(ctx context.Context, name string) error {
	m.record("checkout -b %s", name)
	m.currentBranch = name
	return nil
}

func (m *mockGit) Pull(ctx context.Context, remote, branch string) error {
	m.record("pull %s %s", remote, branch)
	return nil
}

func (m *mockGit) Fetch(ctx context.Context, remote, branch string) error {
	m.record("fetch %s %s", remote, branch)
	return m.fetchErr
}

func (m *mockGit) Log(ctx context.Context, tag, dir string) (string, error) {
	return m.logs[dir], nil
}

func (m *mockGit) StageAll(ctx context.Context, path string) error {
	m.record("add -A %s", path)
	return nil
}

func (m *mockGit) Commit(ctx context.Context, message string) error {
	m.record("commit %s", message)
	return nil
}

func (m *mockGit) TagAnnotated(ctx context.Context, tag, message string) error {
	m.record("tag -a %s", tag)
	return nil
}

func (m *mockGit) PushBranch(ctx context.Context, remote, branch string) error {
	m.record("push %s %s:%s", remote, branch, branch)
	return m.pushBranchErr
}

func (m *mockGit) PushTag(ctx context.Context, remote, tag string) error {
	m.record("push %s %s", remote, tag)
	return m.pushTagErr
}
