package model

// CommitType is the conventional-commit type of a classified commit
type CommitType string

const (
	CommitFeat     CommitType = "feat"
	CommitFix      CommitType = "fix"
	CommitDocs     CommitType = "docs"
	CommitStyle    CommitType = "style"
	CommitPerf     CommitType = "perf"
	CommitRefactor CommitType = "refactor"
	CommitRevert   CommitType = "revert"
	CommitTest     CommitType = "test"
	CommitChore    CommitType = "chore"

	// CommitOther collects commits whose subject does not match the
	// conventional format or uses an unrecognized type
	CommitOther CommitType = "other"
)

// SectionOrder is the fixed display order of changelog sections
var SectionOrder = []CommitType{
	CommitFeat,
	CommitFix,
	CommitDocs,
	CommitStyle,
	CommitPerf,
	CommitRefactor,
	CommitRevert,
	CommitTest,
	CommitChore,
	CommitOther,
}

// SectionTitles maps commit types to their changelog section headings
var SectionTitles = map[CommitType]string{
	CommitFeat:     "Features",
	CommitFix:      "Bug Fixes",
	CommitDocs:     "Documentation",
	CommitStyle:    "Styles",
	CommitPerf:     "Performance Improvements",
	CommitRefactor: "Code Refactoring",
	CommitRevert:   "Reverts",
	CommitTest:     "Tests",
	CommitChore:    "Chores",
	CommitOther:    "Other Changes",
}

// PackageCommit is one classified commit scoped to a package directory.
// Records are derived per package from a commit-log slice and discarded
// after changelog generation.
type PackageCommit struct {
	Hash     string     // Full commit hash
	Message  string     // Trimmed subject without the type(area): prefix
	Type     CommitType // Classified conventional-commit type
	Area     string     // Optional scope from type(area): subjects
	Original string     // Unmodified subject line
}

// ShortHash returns the abbreviated hash used in changelog links
func (c PackageCommit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}
