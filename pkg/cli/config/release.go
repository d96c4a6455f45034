package config

import "github.com/urfave/cli/v3"

// Release holds the options shared by the cut and push workflows. The
// struct is assembled once per invocation and passed down read-only;
// there is no global flag state.
type Release struct {
	Remote        string
	DefaultBranch string
	Type          string
	PackagesRoot  string
	Packages      []string
	Dry           bool
	Force         bool
	RequireForce  bool
}

// Flags returns the CLI flags shared by cut and push
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "remote",
			Usage:       "Remote the release is pushed to",
			Value:       "origin",
			Destination: &c.Remote,
			Sources:     cli.EnvVars("TRAINCTL_REMOTE"),
		},
		&cli.StringFlag{
			Name:        "default-branch",
			Usage:       "Default branch train branches are created from",
			Value:       "main",
			Destination: &c.DefaultBranch,
			Sources:     cli.EnvVars("TRAINCTL_DEFAULT_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "packages-root",
			Usage:       "Directory holding the release packages",
			Value:       "packages",
			Destination: &c.PackagesRoot,
			Sources:     cli.EnvVars("TRAINCTL_PACKAGES_ROOT"),
		},
		&cli.StringSliceFlag{
			Name:        "package",
			Usage:       "Package to release (repeatable, default: all under packages root)",
			Destination: &c.Packages,
		},
	}
}

// CutFlags returns the flags only the cut command accepts
func (c *Release) CutFlags() []cli.Flag {
	return append(c.Flags(),
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Release type (train or patch)",
			Value:       "train",
			Destination: &c.Type,
			Sources:     cli.EnvVars("TRAINCTL_RELEASE_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "dry",
			Usage:       "Inspect the release plan without mutating anything",
			Destination: &c.Dry,
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Required when TRAINCTL_REQUIRE_FORCE is set",
			Destination: &c.Force,
		},
		&cli.BoolFlag{
			Name:        "require-force",
			Usage:       "Refuse to cut unless --force is given",
			Hidden:      true,
			Destination: &c.RequireForce,
			Sources:     cli.EnvVars("TRAINCTL_REQUIRE_FORCE"),
		},
	)
}
