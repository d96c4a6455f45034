package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/interfaces"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
	"github.com/m-mizutani/trainctl/pkg/infra/git"
)

// Cut orchestrates one release cut: derive versions from the last tag,
// resolve the branch to build on, classify commits and bump files per
// package, commit and tag, then hand off to the push negotiator.
type Cut struct {
	Git           interfaces.GitClient
	Store         interfaces.RecordStore
	In            io.Reader
	Out           io.Writer
	Kind          model.ReleaseKind
	Remote        string
	DefaultBranch string
	PackagesRoot  string
	Packages      []string
	DryRun        bool
}

// Execute runs the cut workflow. The returned report accumulates
// warnings and, in dry-run mode, the operations that would have run.
func (u *Cut) Execute(ctx context.Context) (*model.Report, error) {
	logger := ctxlog.From(ctx)
	report := &model.Report{}

	if ok, err := u.Git.RemoteExists(ctx, u.Remote); err != nil {
		return report, err
	} else if !ok {
		return report, goerr.New("remote is not configured",
			goerr.T(types.ErrTagConfig), goerr.V("remote", u.Remote))
	}

	lastTag, err := u.Git.LatestTag(ctx)
	if err != nil {
		return report, err
	}

	versions, err := CalcVersions(lastTag, u.Kind)
	if err != nil {
		return report, err
	}
	logger.Info("cutting release",
		"kind", u.Kind,
		"current", versions.Current.Tag(),
		"next", versions.Next.Tag(),
	)

	resolver := &BranchResolver{
		Git:           u.Git,
		Remote:        u.Remote,
		DefaultBranch: u.DefaultBranch,
		DryRun:        u.DryRun,
	}
	branch, err := resolver.Resolve(ctx, lastTag, u.Kind, versions.Next, report)
	if err != nil {
		return report, err
	}

	packages, err := u.listPackages()
	if err != nil {
		return report, err
	}

	remoteURL, err := u.Git.RemoteURL(ctx, u.Remote)
	if err != nil {
		return report, err
	}
	repoURL := git.WebURL(remoteURL)

	bumper := &Bumper{PackagesRoot: u.PackagesRoot, DryRun: u.DryRun}

	var modified []string
	for _, pkg := range packages {
		raw, err := u.Git.Log(ctx, versions.Current.Tag(), u.PackagesRoot+"/"+pkg)
		if err != nil {
			return report, err
		}

		commits := ClassifyLog(raw)
		if len(commits) == 0 {
			fmt.Fprintf(u.Out, "%s: No changes\n", pkg)
			continue
		}

		message := RenderChangeMessage(commits, repoURL)
		if err := bumper.Bump(ctx, pkg, versions.Current, versions.Next, message, report); err != nil {
			return report, err
		}
		modified = append(modified, pkg)
	}

	if len(modified) == 0 {
		report.Warnf("no package has classified changes since %s, nothing to release", versions.Current.Tag())
		u.printSummary(report)
		return report, nil
	}

	releaseMsg := "Release: " + versions.Next.Tag()
	mutations := []struct {
		desc string
		op   func() error
	}{
		{fmt.Sprintf("git add -A %s", u.PackagesRoot), func() error { return u.Git.StageAll(ctx, u.PackagesRoot) }},
		{fmt.Sprintf("git commit -m %q", releaseMsg), func() error { return u.Git.Commit(ctx, releaseMsg) }},
		{fmt.Sprintf("git tag -a %s", versions.Next.Tag()), func() error { return u.Git.TagAnnotated(ctx, versions.Next.Tag(), releaseMsg) }},
	}
	for _, m := range mutations {
		if u.DryRun {
			report.Skipf("%s", m.desc)
			continue
		}
		if err := m.op(); err != nil {
			return report, err
		}
	}

	rec := &model.ReleaseRecord{
		Train:            strconv.Itoa(versions.Next.Train),
		Patch:            strconv.Itoa(versions.Next.Patch),
		Type:             u.Kind,
		Branch:           branch,
		Tag:              versions.Next.Tag(),
		ModifiedPackages: modified,
	}

	negotiator := &PushNegotiator{
		Git:           u.Git,
		Store:         u.Store,
		In:            u.In,
		Out:           u.Out,
		Remote:        u.Remote,
		DefaultBranch: u.DefaultBranch,
		PackagesRoot:  u.PackagesRoot,
		DryRun:        u.DryRun,
	}
	if err := negotiator.Negotiate(ctx, rec, true); err != nil {
		return report, err
	}

	u.printSummary(report)
	return report, nil
}

// listPackages returns the configured package names, or every directory
// under the packages root when none were configured
func (u *Cut) listPackages() ([]string, error) {
	if len(u.Packages) > 0 {
		return u.Packages, nil
	}

	entries, err := os.ReadDir(u.PackagesRoot)
	if err != nil {
		return nil, goerr.Wrap(err, "packages root not found, is this the right codebase?",
			goerr.T(types.ErrTagConfig), goerr.V("root", u.PackagesRoot))
	}

	var packages []string
	for _, e := range entries {
		if e.IsDir() {
			packages = append(packages, e.Name())
		}
	}
	sort.Strings(packages)
	return packages, nil
}

func (u *Cut) printSummary(report *model.Report) {
	if len(report.Skipped) > 0 {
		fmt.Fprintln(u.Out, "dry-run: skipped operations:")
		for _, s := range report.Skipped {
			fmt.Fprintf(u.Out, "  %s\n", s)
		}
	}
	for _, e := range report.Errors {
		color.New(color.FgRed).Fprintf(u.Out, "error: %s\n", e)
	}
	if report.HasWarnings() {
		warn := color.New(color.FgYellow)
		for _, w := range report.Warnings {
			warn.Fprintf(u.Out, "warning: %s\n", w)
		}
		fmt.Fprintln(u.Out, "completed with warnings")
	}
}

// SweepStore removes expired pending releases. Every command runs this
// before its main logic so stale resumable releases never accumulate.
func SweepStore(ctx context.Context, store interfaces.RecordStore) {
	removed, err := store.SweepExpired(ctx, time.Now())
	if err != nil {
		ctxlog.From(ctx).Warn("failed to sweep expired pending releases", "error", err)
		return
	}
	if removed > 0 {
		ctxlog.From(ctx).Info("swept expired pending releases", "count", removed)
	}
}
