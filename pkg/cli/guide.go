package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func cmdGuide() *cli.Command {
	return &cli.Command{
		Name:  "guide",
		Usage: "Explain the release workflow and its terms",
		Action: func(ctx context.Context, c *cli.Command) error {
			title := color.New(color.Bold, color.FgCyan)
			term := color.New(color.Bold)

			title.Fprintln(os.Stdout, "Release workflow")
			fmt.Fprintln(os.Stdout, `
  trainctl cut            cut the next train release (X.N+1.0)
  trainctl cut --type patch
                          cut a patch on the current train (X.N.P+1)
  trainctl cut --dry      inspect the plan without changing anything
  trainctl push --id <id> resume a deferred push`)
			fmt.Fprintln(os.Stdout)

			title.Fprintln(os.Stdout, "Glossary")
			for _, entry := range [][2]string{
				{"train", "a scheduled release incrementing the middle version component and resetting patch to zero"},
				{"patch", "an out-of-band release adding a targeted fix to the current train"},
				{"tag", "an immutable pointer into history, created once per release as v{version}"},
				{"remote", "the endpoint commits and tags are pushed to"},
				{"pending release", "a release committed and tagged locally whose push was deferred; resumable for 14 days"},
				{"modified package", "a package with at least one classified commit since the last release tag"},
			} {
				term.Fprintf(os.Stdout, "  %-18s", entry[0])
				fmt.Fprintln(os.Stdout, entry[1])
			}
			return nil
		},
	}
}
