package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Store holds pending-release store configuration
type Store struct {
	Dir string
}

// Flags returns CLI flags for the store
func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-dir",
			Usage:       "Directory pending releases are stored in (default: ~/.trainctl/pending)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("TRAINCTL_STORE_DIR"),
		},
	}
}

// Resolve returns the configured directory, falling back to the default
// under the user's home directory
func (c *Store) Resolve() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "cannot resolve home directory for release store")
	}
	return filepath.Join(home, ".trainctl", "pending"), nil
}
