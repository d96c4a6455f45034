package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// manifestNames are the version-bearing files a package may carry. The
// first textual occurrence of the current version in each present file
// is replaced with the next version.
var manifestNames = []string{"package.json", "VERSION", "version.go"}

const (
	changelogName  = "CHANGELOG.md"
	changelogTitle = "# Changelog"
)

// Bumper applies version and changelog mutations to package
// directories. It performs no filesystem writes in dry-run mode.
type Bumper struct {
	PackagesRoot string
	DryRun       bool
	Now          func() time.Time
}

// Bump rewrites the package's manifest versions and prepends a dated
// changelog section. A missing package directory is a warning, not an
// error; the caller treats the package as having no changes.
func (b *Bumper) Bump(ctx context.Context, pkg string, current, next model.ReleaseVersion, message string, report *model.Report) error {
	logger := ctxlog.From(ctx)
	dir := filepath.Join(b.PackagesRoot, pkg)

	if _, err := os.Stat(dir); err != nil {
		report.Warnf("package directory %s does not exist, skipping", dir)
		return nil
	}

	if b.DryRun {
		report.Skipf("bump %s from %s to %s", pkg, current, next)
		return nil
	}

	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return goerr.Wrap(err, "failed to read manifest", goerr.V("path", path))
		}

		replaced := strings.Replace(string(data), current.String(), next.String(), 1)
		if replaced == string(data) {
			logger.Debug("manifest does not contain current version", "path", path, "version", current.String())
			continue
		}

		if err := os.WriteFile(path, []byte(replaced), 0644); err != nil {
			return goerr.Wrap(err, "failed to write manifest", goerr.V("path", path))
		}
		logger.Debug("bumped manifest", "path", path, "from", current.String(), "to", next.String())
	}

	return b.writeChangelog(ctx, dir, next, message)
}

func (b *Bumper) writeChangelog(ctx context.Context, dir string, next model.ReleaseVersion, message string) error {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	path := filepath.Join(dir, changelogName)
	section := fmt.Sprintf("## %s (%s)\n\n%s\n", next, now().Format("2006-01-02"), message)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to read changelog", goerr.V("path", path))
	}

	content := string(data)
	var updated string

	// Insert after the canonical title line when present, otherwise the
	// new section goes on top of whatever is there.
	if idx := strings.Index(content, changelogTitle); idx >= 0 {
		head := content[:idx+len(changelogTitle)]
		tail := strings.TrimLeft(content[idx+len(changelogTitle):], "\n")
		updated = head + "\n\n" + section
		if tail != "" {
			updated += "\n" + tail
		}
	} else if content != "" {
		updated = section + "\n" + content
	} else {
		updated = section
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return goerr.Wrap(err, "failed to write changelog", goerr.V("path", path))
	}

	ctxlog.From(ctx).Debug("updated changelog", "path", path, "version", next.String())
	return nil
}
