package model

import "fmt"

// ReleaseKind selects how the next version is derived from the last tag
type ReleaseKind string

const (
	// KindTrain is a scheduled release: the train component is
	// incremented and the patch component resets to zero
	KindTrain ReleaseKind = "train"

	// KindPatch is an out-of-band fix on the current train: only the
	// patch component is incremented
	KindPatch ReleaseKind = "patch"
)

// Valid reports whether the kind is one of the supported release kinds
func (k ReleaseKind) Valid() bool {
	return k == KindTrain || k == KindPatch
}

// ReleaseVersion is one MAJOR.TRAIN.PATCH triple. It is created once per
// cut invocation and immutable thereafter; the string forms are derived
// so they can never disagree with the components.
type ReleaseVersion struct {
	Major int
	Train int
	Patch int
}

// String returns the bare version, e.g. "149.4.0"
func (v ReleaseVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Train, v.Patch)
}

// Tag returns the git tag form, e.g. "v149.4.0"
func (v ReleaseVersion) Tag() string {
	return "v" + v.String()
}

// TrainBranch returns the branch releases of this train are built on,
// e.g. "train-4"
func (v ReleaseVersion) TrainBranch() string {
	return fmt.Sprintf("train-%d", v.Train)
}
