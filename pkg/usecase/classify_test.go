package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/usecase"
)

func TestClassifyLog_ConventionalSubjects(t *testing.T) {
	raw := strings.Join([]string{
		"aaa1111 feat(auth): add session refresh",
		"bbb2222 fix: handle empty token",
		"ccc3333 chore(deps): bump linter",
	}, "\n")

	commits := usecase.ClassifyLog(raw)
	gt.Equal(t, len(commits), 3)

	gt.Equal(t, commits[0].Type, model.CommitFeat)
	gt.Equal(t, commits[0].Area, "auth")
	gt.Equal(t, commits[0].Message, "add session refresh")
	gt.Equal(t, commits[0].Hash, "aaa1111")
	gt.Equal(t, commits[0].Original, "feat(auth): add session refresh")

	gt.Equal(t, commits[1].Type, model.CommitFix)
	gt.Equal(t, commits[1].Area, "")

	gt.Equal(t, commits[2].Type, model.CommitChore)
	gt.Equal(t, commits[2].Area, "deps")
}

func TestClassifyLog_DropsMergeAndRelease(t *testing.T) {
	raw := strings.Join([]string{
		"aaa1111 Release: v149.3.0",
		"bbb2222 feat: something useful",
		"ccc3333 Merge(main): sync up",
		"ddd4444 fix: something broken",
		"eee5555 Release: v149.2.9",
	}, "\n")

	commits := usecase.ClassifyLog(raw)
	gt.Equal(t, len(commits), 2)
	for _, c := range commits {
		gt.Value(t, c.Original).NotEqual("Release: v149.3.0")
		gt.Value(t, c.Original).NotEqual("Merge(main): sync up")
	}
}

func TestClassifyLog_UnrecognizedTypeIsOther(t *testing.T) {
	commits := usecase.ClassifyLog("aaa1111 wibble(core): did a thing")
	gt.Equal(t, len(commits), 1)
	gt.Equal(t, commits[0].Type, model.CommitOther)
	// The full subject is preserved as the message, unmodified
	gt.Equal(t, commits[0].Message, "wibble(core): did a thing")
}

func TestClassifyLog_NonConventionalIsOther(t *testing.T) {
	commits := usecase.ClassifyLog("aaa1111 quick hack before the demo")
	gt.Equal(t, len(commits), 1)
	gt.Equal(t, commits[0].Type, model.CommitOther)
	gt.Equal(t, commits[0].Message, "quick hack before the demo")
}

func TestClassifyLog_PreservesLogOrder(t *testing.T) {
	raw := strings.Join([]string{
		"aaa1111 fix: first",
		"bbb2222 feat: second",
		"ccc3333 fix: third",
	}, "\n")

	commits := usecase.ClassifyLog(raw)
	gt.Equal(t, len(commits), 3)
	gt.Equal(t, commits[0].Message, "first")
	gt.Equal(t, commits[1].Message, "second")
	gt.Equal(t, commits[2].Message, "third")
}

func TestClassifyLog_EmptyInput(t *testing.T) {
	gt.Equal(t, len(usecase.ClassifyLog("")), 0)
	gt.Equal(t, len(usecase.ClassifyLog("\n\n")), 0)
}

func TestRenderChangeMessage_SectionOrder(t *testing.T) {
	commits := usecase.ClassifyLog(strings.Join([]string{
		"aaa1111 chore: tidy",
		"bbb2222 feat(auth): add login",
		"ccc3333 fix: crash on start",
	}, "\n"))

	msg := usecase.RenderChangeMessage(commits, "https://github.com/acme/trains")

	featIdx := strings.Index(msg, "### Features")
	fixIdx := strings.Index(msg, "### Bug Fixes")
	choreIdx := strings.Index(msg, "### Chores")
	gt.True(t, featIdx >= 0)
	gt.True(t, fixIdx > featIdx)
	gt.True(t, choreIdx > fixIdx)

	gt.String(t, msg).Contains("- auth: add login ([bbb2222](https://github.com/acme/trains/commit/bbb2222))")
	gt.String(t, msg).Contains("- crash on start ([ccc3333]")
}

func TestRenderChangeMessage_Empty(t *testing.T) {
	gt.Equal(t, usecase.RenderChangeMessage(nil, "https://example.com"), "")
}

func TestRenderChangeMessage_LongHashAbbreviated(t *testing.T) {
	commits := usecase.ClassifyLog("0123456789abcdef fix: truncate hashes")
	msg := usecase.RenderChangeMessage(commits, "https://github.com/acme/trains")
	gt.String(t, msg).Contains("[0123456](https://github.com/acme/trains/commit/0123456789abcdef)")
}
