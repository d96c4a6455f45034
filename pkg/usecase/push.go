package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/interfaces"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/infra/git"
	"github.com/m-mizutani/trainctl/pkg/utils/prompt"
)

// confirmWord is the literal the operator must type to authorize the
// push. Exact match only: not case-insensitive, no prefix matching.
const confirmWord = "push"

// PushNegotiator drives the push-confirmation protocol: propose, await
// a typed confirmation, push branch then tag, and keep the pending
// record resumable on decline or failure.
type PushNegotiator struct {
	Git           interfaces.GitClient
	Store         interfaces.RecordStore
	In            io.Reader
	Out           io.Writer
	Remote        string
	DefaultBranch string
	PackagesRoot  string
	DryRun        bool
}

// Negotiate proposes pushing the release described by rec. When save is
// true the release was cut in this same invocation and is persisted
// before the prompt, so it stays resumable whatever happens next; when
// false an already-persisted release is being resumed and rec.ID names
// its record.
func (n *PushNegotiator) Negotiate(ctx context.Context, rec *model.ReleaseRecord, save bool) error {
	logger := ctxlog.From(ctx)

	branchPush := fmt.Sprintf("git push %s %s:%s", n.Remote, rec.Branch, rec.Branch)
	tagPush := fmt.Sprintf("git push %s %s", n.Remote, rec.Tag)

	if n.DryRun {
		fmt.Fprintln(n.Out, "dry-run: the following commands would run:")
		fmt.Fprintf(n.Out, "  %s\n", branchPush)
		fmt.Fprintf(n.Out, "  %s\n", tagPush)
		return nil
	}

	if save {
		id, err := n.Store.Save(ctx, rec)
		if err != nil {
			return err
		}
		logger.Debug("pending release saved before confirmation", "id", id)
	}

	warn := color.New(color.FgYellow, color.Bold)
	warn.Fprintf(n.Out, "About to push branch %q and tag %q to %q.\n", rec.Branch, rec.Tag, n.Remote)
	warn.Fprintln(n.Out, "Pushing may trigger downstream deploy automation.")
	fmt.Fprintf(n.Out, "Type %q to confirm: ", confirmWord)

	answer, err := prompt.ReadLine(n.In)
	if err != nil {
		return err
	}

	if answer != confirmWord {
		n.decline(rec)
		return nil
	}

	if err := n.Git.PushBranch(ctx, n.Remote, rec.Branch); err != nil {
		return goerr.Wrap(err, "branch push failed, release remains resumable",
			goerr.V("id", rec.ID), goerr.V("branch", rec.Branch))
	}
	if err := n.Git.PushTag(ctx, n.Remote, rec.Tag); err != nil {
		return goerr.Wrap(err, "tag push failed, release remains resumable",
			goerr.V("id", rec.ID), goerr.V("tag", rec.Tag))
	}

	if rec.ID != "" {
		if err := n.Store.Delete(ctx, rec.ID); err != nil {
			return err
		}
	}

	n.printFollowUp(ctx, rec)
	return nil
}

func (n *PushNegotiator) decline(rec *model.ReleaseRecord) {
	fmt.Fprintln(n.Out, "Push deferred. The release is saved and can be resumed with:")
	fmt.Fprintf(n.Out, "  trainctl push --id %s\n", rec.ID)
	fmt.Fprintln(n.Out, "Pending releases expire after 14 days.")
}

// printFollowUp prints the post-push guidance: a compare link for the
// pull request, a deploy-ticket reminder for train releases, and each
// modified package's changelog.
func (n *PushNegotiator) printFollowUp(ctx context.Context, rec *model.ReleaseRecord) {
	ok := color.New(color.FgGreen)
	ok.Fprintf(n.Out, "Pushed %s (%s).\n", rec.Tag, rec.Branch)

	remoteURL, err := n.Git.RemoteURL(ctx, n.Remote)
	if err != nil {
		ctxlog.From(ctx).Warn("could not resolve remote URL for follow-up links", "error", err)
		return
	}
	repoURL := git.WebURL(remoteURL)

	fmt.Fprintf(n.Out, "Open a pull request: %s/compare/%s...%s\n", repoURL, n.DefaultBranch, rec.Branch)
	if rec.Type == model.KindTrain {
		fmt.Fprintln(n.Out, "Remember to log a deploy ticket for this train release.")
	}
	for _, pkg := range rec.ModifiedPackages {
		fmt.Fprintf(n.Out, "Changelog: %s/blob/%s/%s/%s/CHANGELOG.md\n", repoURL, rec.Branch, n.PackagesRoot, pkg)
	}
}
