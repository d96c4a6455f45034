package usecase_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/trainctl/pkg/domain/model"
	"github.com/m-mizutani/trainctl/pkg/domain/types"
	"github.com/m-mizutani/trainctl/pkg/usecase"
)

func TestCalcVersions_Train(t *testing.T) {
	pair, err := usecase.CalcVersions("v149.3.0", model.KindTrain)
	gt.NoError(t, err)

	gt.Equal(t, pair.Current, model.ReleaseVersion{Major: 149, Train: 3, Patch: 0})
	gt.Equal(t, pair.Next, model.ReleaseVersion{Major: 149, Train: 4, Patch: 0})
	gt.Equal(t, pair.Next.String(), "149.4.0")
	gt.Equal(t, pair.Next.Tag(), "v149.4.0")
	gt.Equal(t, pair.Next.TrainBranch(), "train-4")
}

func TestCalcVersions_Patch(t *testing.T) {
	pair, err := usecase.CalcVersions("v149.4.2", model.KindPatch)
	gt.NoError(t, err)

	gt.Equal(t, pair.Next, model.ReleaseVersion{Major: 149, Train: 4, Patch: 3})
	gt.Equal(t, pair.Next.String(), "149.4.3")
	gt.Equal(t, pair.Next.Tag(), "v149.4.3")
	gt.Equal(t, pair.Next.TrainBranch(), "train-4")
}

func TestCalcVersions_PatchResetOnTrain(t *testing.T) {
	pair, err := usecase.CalcVersions("v2.9.17", model.KindTrain)
	gt.NoError(t, err)
	gt.Equal(t, pair.Next, model.ReleaseVersion{Major: 2, Train: 10, Patch: 0})
}

func TestParseTag_Roundtrip(t *testing.T) {
	for _, tag := range []string{"v0.0.0", "v1.2.3", "v149.4.0", "v1000.250.99"} {
		v, err := usecase.ParseTag(tag)
		gt.NoError(t, err)
		gt.Equal(t, v.Tag(), tag)
	}
}

func TestParseTag_Malformed(t *testing.T) {
	tests := []struct {
		name string
		tag  string
	}{
		{"missing v prefix", "149.3.0"},
		{"two components", "v149.3"},
		{"four components", "v149.3.0.1"},
		{"non-numeric component", "v149.x.0"},
		{"empty", ""},
		{"bare v", "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := usecase.ParseTag(tt.tag)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagParse))
		})
	}
}

func TestCalcVersions_Pure(t *testing.T) {
	a, err := usecase.CalcVersions("v5.1.2", model.KindPatch)
	gt.NoError(t, err)
	b, err := usecase.CalcVersions("v5.1.2", model.KindPatch)
	gt.NoError(t, err)
	gt.Equal(t, a, b)
}
