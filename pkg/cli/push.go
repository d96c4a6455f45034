package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/trainctl/pkg/cli/config"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
	gitinfra "github.com/m-mizutani/trainctl/pkg/infra/git"
	"github.com/m-mizutani/trainctl/pkg/infra/store"
	"github.com/m-mizutani/trainctl/pkg/usecase"
)

func cmdPush() *cli.Command {
	var (
		releaseCfg config.Release
		storeCfg   config.Store
		id         string
	)

	flags := append(releaseCfg.Flags(), storeCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "id",
		Usage:       "Id of the pending release to resume",
		Destination: &id,
	})

	return &cli.Command{
		Name:  "push",
		Usage: "Resume a deferred release push",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			storeDir, err := storeCfg.Resolve()
			if err != nil {
				return err
			}
			recordStore := store.New(storeDir)
			usecase.SweepStore(ctx, recordStore)

			if id == "" {
				ids, err := recordStore.ListIDs(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(os.Stdout, "No pending releases. Start one with: trainctl cut")
				} else {
					fmt.Fprintln(os.Stdout, "Pending releases:")
					for _, pid := range ids {
						rec, err := recordStore.Retrieve(ctx, pid)
						if err != nil {
							fmt.Fprintf(os.Stdout, "  %s (unreadable)\n", pid)
							continue
						}
						fmt.Fprintf(os.Stdout, "  %s  %s on %s (created %s)\n",
							pid, rec.Tag, rec.Branch, rec.CreatedAt.Format("2006-01-02 15:04"))
					}
					fmt.Fprintln(os.Stdout, "Resume one with: trainctl push --id <id>")
				}
				return goerr.New("push requires --id", goerr.T(types.ErrTagRequiredOption))
			}

			rec, err := recordStore.Retrieve(ctx, id)
			if err != nil {
				return err
			}

			gitClient, err := gitinfra.New(ctx, ".")
			if err != nil {
				return err
			}

			negotiator := &usecase.PushNegotiator{
				Git:           gitClient,
				Store:         recordStore,
				In:            os.Stdin,
				Out:           os.Stdout,
				Remote:        releaseCfg.Remote,
				DefaultBranch: releaseCfg.DefaultBranch,
				PackagesRoot:  releaseCfg.PackagesRoot,
			}
			return negotiator.Negotiate(ctx, rec, false)
		},
	}
}
