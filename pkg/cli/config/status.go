package config

import "github.com/urfave/cli/v3"

// Status holds service-status reporter configuration
type Status struct {
	BaseURL     string
	Environment string
	Services    []string
}

// Flags returns CLI flags for the status command
func (c *Status) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the service status endpoints",
			Destination: &c.BaseURL,
			Required:    true,
			Sources:     cli.EnvVars("TRAINCTL_STATUS_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "environment",
			Aliases:     []string{"e"},
			Usage:       "Environment to report on",
			Value:       "production",
			Destination: &c.Environment,
			Sources:     cli.EnvVars("TRAINCTL_ENVIRONMENT"),
		},
		&cli.StringSliceFlag{
			Name:        "service",
			Usage:       "Service to report on (repeatable)",
			Destination: &c.Services,
			Sources:     cli.EnvVars("TRAINCTL_SERVICES"),
		},
	}
}
