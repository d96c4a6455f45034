package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/trainctl/pkg/cli/config"
	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/infra/status"
)

func cmdStatus() *cli.Command {
	var statusCfg config.Status

	return &cli.Command{
		Name:  "status",
		Usage: "Report deployed versions of services (read-only)",
		Flags: statusCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client := status.New(statusCfg.BaseURL)

			var results []model.ServiceStatus
			for _, svc := range statusCfg.Services {
				info, err := client.FetchVersion(ctx, svc, statusCfg.Environment)
				results = append(results, model.ServiceStatus{
					Service:     svc,
					Environment: statusCfg.Environment,
					Info:        info,
					Err:         err,
				})
			}

			header := color.New(color.Bold)
			header.Fprintf(os.Stdout, "%-24s %-12s %-12s %s\n", "SERVICE", "VERSION", "TAG", "COMMIT")
			for _, r := range results {
				if r.Err != nil {
					color.New(color.FgRed).Fprintf(os.Stdout, "%-24s unreachable: %v\n", r.Service, r.Err)
					continue
				}
				fmt.Fprintf(os.Stdout, "%-24s %-12s %-12s %s\n",
					r.Service, r.Info.Version, r.Info.Tag, r.Info.Commit)
			}
			return nil
		},
	}
}
