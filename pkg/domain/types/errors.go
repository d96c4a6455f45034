package types

import "github.com/m-mizutani/goerr/v2"

// Error tags categorize failures so the CLI layer can decide how to
// report them without inspecting message strings.
var (
	// ErrTagParse indicates a malformed version tag
	ErrTagParse = goerr.NewTag("parse")

	// ErrTagPrecondition indicates the working copy is not in a state a
	// release can be cut from (dirty tree, no new commits, wrong branch)
	ErrTagPrecondition = goerr.NewTag("precondition")

	// ErrTagGitCommand indicates a git subprocess exited non-zero or
	// produced unexpected error output
	ErrTagGitCommand = goerr.NewTag("git_command")

	// ErrTagNotFound indicates a missing or unparseable pending release
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagRequiredOption indicates a command was invoked without a
	// required option
	ErrTagRequiredOption = goerr.NewTag("required_option")

	// ErrTagConfig indicates an invalid invocation environment, such as
	// running outside the codebase or naming a remote that does not exist
	ErrTagConfig = goerr.NewTag("config")
)

// ErrRemoteRefMissing is returned by GitClient.Fetch when the remote does
// not have the requested branch. The branch resolver tolerates this case
// and falls through to creating the branch from the default branch.
var ErrRemoteRefMissing = goerr.New("remote ref not found", goerr.T(ErrTagGitCommand))
