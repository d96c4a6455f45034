package model

import "time"

// ReleaseRecord is a pending release whose local commit and tag steps are
// complete but whose push was deferred. One record is persisted per file
// in the store directory; the filesystem owns it across invocations.
type ReleaseRecord struct {
	ID               string      `toml:"id"`
	Train            string      `toml:"train"`
	Patch            string      `toml:"patch"`
	Type             ReleaseKind `toml:"type"`
	Branch           string      `toml:"branch"`
	Tag              string      `toml:"tag"`
	ModifiedPackages []string    `toml:"modified_packages"`
	CreatedAt        time.Time   `toml:"created_at"`
}
