package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/trainctl/pkg/cli/config"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
	gitinfra "github.com/m-mizutani/trainctl/pkg/infra/git"
	"github.com/m-mizutani/trainctl/pkg/infra/store"
	"github.com/m-mizutani/trainctl/pkg/usecase"
)

func cmdCut() *cli.Command {
	var (
		releaseCfg config.Release
		storeCfg   config.Store
	)

	flags := append(releaseCfg.CutFlags(), storeCfg.Flags()...)

	return &cli.Command{
		Name:  "cut",
		Usage: "Cut a new train or patch release",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if releaseCfg.RequireForce && !releaseCfg.Force {
				return goerr.New("this environment requires --force to cut a release",
					goerr.T(types.ErrTagRequiredOption))
			}

			kind := model.ReleaseKind(releaseCfg.Type)
			if !kind.Valid() {
				return goerr.New("release type must be train or patch",
					goerr.T(types.ErrTagConfig), goerr.V("type", releaseCfg.Type))
			}

			gitClient, err := gitinfra.New(ctx, ".")
			if err != nil {
				return err
			}

			storeDir, err := storeCfg.Resolve()
			if err != nil {
				return err
			}
			recordStore := store.New(storeDir)
			usecase.SweepStore(ctx, recordStore)

			logger.Info("Starting release cut",
				"kind", kind,
				"remote", releaseCfg.Remote,
				"dry_run", releaseCfg.Dry,
			)

			cut := &usecase.Cut{
				Git:           gitClient,
				Store:         recordStore,
				In:            os.Stdin,
				Out:           os.Stdout,
				Kind:          kind,
				Remote:        releaseCfg.Remote,
				DefaultBranch: releaseCfg.DefaultBranch,
				PackagesRoot:  releaseCfg.PackagesRoot,
				Packages:      releaseCfg.Packages,
				DryRun:        releaseCfg.Dry,
			}

			if _, err := cut.Execute(ctx); err != nil {
				return err
			}
			return nil
		},
	}
}
