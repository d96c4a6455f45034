package model

// BranchScope distinguishes where a branch was looked up
type BranchScope string

const (
	ScopeLocal  BranchScope = "local"
	ScopeRemote BranchScope = "remote"
)

// BranchRef is the result of a branch-existence probe. It is queried
// fresh on every cut invocation and never cached across invocations.
type BranchRef struct {
	Name   string
	Exists bool
	Scope  BranchScope
}
