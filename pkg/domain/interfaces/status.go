package interfaces

import (
	"context"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// StatusClient fetches read-only deployment status for a service
type StatusClient interface {
	// FetchVersion retrieves the version info a deployed service exposes
	FetchVersion(ctx context.Context, service, environment string) (*model.VersionInfo, error)
}
