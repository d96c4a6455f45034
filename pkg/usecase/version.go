package usecase

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
)

// VersionPair holds the version being released from and the version
// being cut, both derived once per invocation from the last tag
type VersionPair struct {
	Current model.ReleaseVersion
	Next    model.ReleaseVersion
}

// CalcVersions parses lastTag (expected form vMAJOR.TRAIN.PATCH) and
// derives the next version for the release kind. Pure: no side effects,
// same input always yields the same output.
func CalcVersions(lastTag string, kind model.ReleaseKind) (*VersionPair, error) {
	current, err := ParseTag(lastTag)
	if err != nil {
		return nil, err
	}

	next := current
	switch kind {
	case model.KindTrain:
		next.Train++
		next.Patch = 0
	case model.KindPatch:
		next.Patch++
	default:
		return nil, goerr.New("unknown release kind",
			goerr.T(types.ErrTagParse), goerr.V("kind", kind))
	}

	return &VersionPair{Current: current, Next: next}, nil
}

// ParseTag parses a release tag of the form vMAJOR.TRAIN.PATCH
func ParseTag(tag string) (model.ReleaseVersion, error) {
	var v model.ReleaseVersion

	raw, ok := strings.CutPrefix(tag, "v")
	if !ok {
		return v, goerr.New("release tag must start with 'v'",
			goerr.T(types.ErrTagParse), goerr.V("tag", tag))
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return v, goerr.New("release tag must have three components",
			goerr.T(types.ErrTagParse), goerr.V("tag", tag))
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return v, goerr.Wrap(err, "release tag component is not numeric",
				goerr.T(types.ErrTagParse), goerr.V("tag", tag), goerr.V("component", p))
		}
		nums[i] = n
	}

	v.Major, v.Train, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}
