package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
)

// subjectPattern matches conventional-commit subjects: type(area): message
var subjectPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?!?:\s*(.*)$`)

// droppedTypes never appear in a changelog: merge commits and the
// release commits this tool creates itself
var droppedTypes = map[string]bool{
	"Merge":   true,
	"Release": true,
}

var knownTypes = map[string]model.CommitType{
	"feat":     model.CommitFeat,
	"fix":      model.CommitFix,
	"docs":     model.CommitDocs,
	"style":    model.CommitStyle,
	"perf":     model.CommitPerf,
	"refactor": model.CommitRefactor,
	"revert":   model.CommitRevert,
	"test":     model.CommitTest,
	"chore":    model.CommitChore,
}

// ClassifyLog turns a raw commit log (one "<hash> <subject>" line per
// commit, already scoped to a package directory) into typed commit
// records, preserving log order. Merge and Release commits are dropped;
// subjects that do not match the conventional format, or that use an
// unrecognized type, classify as "other" with the full subject as the
// message.
func ClassifyLog(raw string) []model.PackageCommit {
	var commits []model.PackageCommit

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		hash, subject, found := strings.Cut(line, " ")
		if !found {
			continue
		}

		commit := model.PackageCommit{
			Hash:     hash,
			Type:     model.CommitOther,
			Message:  subject,
			Original: subject,
		}

		if m := subjectPattern.FindStringSubmatch(subject); m != nil {
			if droppedTypes[m[1]] {
				continue
			}
			if typ, ok := knownTypes[m[1]]; ok {
				commit.Type = typ
				commit.Area = m[2]
				commit.Message = strings.TrimSpace(m[3])
			}
		}

		commits = append(commits, commit)
	}
	return commits
}

// RenderChangeMessage groups classified commits by type in the fixed
// display order and renders the markdown sections for one package.
// Returns the empty string when there are no commits.
func RenderChangeMessage(commits []model.PackageCommit, repoURL string) string {
	if len(commits) == 0 {
		return ""
	}

	grouped := make(map[model.CommitType][]model.PackageCommit)
	for _, c := range commits {
		grouped[c.Type] = append(grouped[c.Type], c)
	}

	var b strings.Builder
	for _, typ := range model.SectionOrder {
		section := grouped[typ]
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(&b, "### %s\n\n", model.SectionTitles[typ])
		for _, c := range section {
			area := ""
			if c.Area != "" {
				area = c.Area + ": "
			}
			fmt.Fprintf(&b, "- %s%s ([%s](%s/commit/%s))\n", area, c.Message, c.ShortHash(), repoURL, c.Hash)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
