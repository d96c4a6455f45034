package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// RecordStore persists pending-release records across invocations.
// Invariant: Retrieve(Save(r)) equals r field-for-field until the record
// is deleted or swept.
type RecordStore interface {
	// Save assigns the record an id and creation time, writes it to disk
	// and returns the id
	Save(ctx context.Context, rec *model.ReleaseRecord) (string, error)

	// Retrieve loads a record by id. A missing or unparseable record
	// yields an error tagged types.ErrTagNotFound.
	Retrieve(ctx context.Context, id string) (*model.ReleaseRecord, error)

	// ListIDs returns the ids of all stored records
	ListIDs(ctx context.Context) ([]string, error)

	// SweepExpired deletes records older than the retention period and
	// returns how many were removed. Invoked once per command before the
	// command's main logic.
	SweepExpired(ctx context.Context, now time.Time) (int, error)

	// Delete removes a record after a successful push
	Delete(ctx context.Context, id string) error
}
