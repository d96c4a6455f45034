package store

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
)

const (
	fileExt = ".toml"

	// retention is how long a pending release stays resumable before the
	// per-command sweep removes it
	retention = 14 * 24 * time.Hour
)

// Store keeps one TOML file per pending release in a flat directory.
// It is unguarded process-local state: concurrent invocations against
// the same directory are not synchronized (single-operator assumption).
type Store struct {
	dir   string
	now   func() time.Time
	newID func() string
}

// Option configures Store
type Option func(*Store)

// WithClock replaces the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDSource replaces the id generator, for tests
func WithIDSource(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New creates a store rooted at dir. The directory is created lazily on
// first write.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:   dir,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the storage directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return goerr.Wrap(err, "failed to create store directory", goerr.V("dir", s.dir))
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Save assigns the record an opaque id and creation time, writes it as
// TOML and returns the id
func (s *Store) Save(ctx context.Context, rec *model.ReleaseRecord) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	rec.ID = s.newID()
	rec.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	data, err := toml.Marshal(rec)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode release record", goerr.V("id", rec.ID))
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0600); err != nil {
		return "", goerr.Wrap(err, "failed to write release record", goerr.V("path", s.path(rec.ID)))
	}

	ctxlog.From(ctx).Debug("saved pending release", "id", rec.ID, "tag", rec.Tag)
	return rec.ID, nil
}

// Retrieve loads a record by id
func (s *Store) Retrieve(ctx context.Context, id string) (*model.ReleaseRecord, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, goerr.Wrap(err, "pending release not found",
			goerr.T(types.ErrTagNotFound), goerr.V("id", id))
	}

	var rec model.ReleaseRecord
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, goerr.Wrap(err, "pending release record is unreadable",
			goerr.T(types.ErrTagNotFound), goerr.V("id", id))
	}
	return &rec, nil
}

// ListIDs returns the ids of all stored records, derived from filenames
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to list store directory", goerr.V("dir", s.dir))
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	return ids, nil
}

// SweepExpired deletes every record older than the retention period.
// Expiry is computed from the record's created_at field; records written
// by older versions named by a millisecond timestamp fall back to the id
// itself.
func (s *Store) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	logger := ctxlog.From(ctx)

	ids, err := s.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-retention)
	removed := 0

	for _, id := range ids {
		createdAt, ok := s.createdAt(ctx, id)
		if !ok {
			logger.Warn("skipping unreadable pending release", "id", id)
			continue
		}
		if !createdAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(s.path(id)); err != nil {
			return removed, goerr.Wrap(err, "failed to remove expired release", goerr.V("id", id))
		}
		logger.Debug("swept expired pending release", "id", id, "created_at", createdAt)
		removed++
	}
	return removed, nil
}

func (s *Store) createdAt(ctx context.Context, id string) (time.Time, bool) {
	rec, err := s.Retrieve(ctx, id)
	if err == nil && !rec.CreatedAt.IsZero() {
		return rec.CreatedAt, true
	}

	// Legacy records were named by their creation time in milliseconds
	if ms, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// Delete removes a record, typically after a successful push
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		return goerr.Wrap(err, "pending release not found",
			goerr.T(types.ErrTagNotFound), goerr.V("id", id))
	}
	return nil
}
