package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"okta-import/core/state"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubShower struct {
	state *tfjson.State
	err   error
}

func (s *stubShower) Show(ctx context.Context, opts ...tfexec.ShowOption) (*tfjson.State, error) {
	return s.state, s.err
}

func newTestExporter(l *zap.Logger, shower *stubShower) *state.Exporter {
	e := state.NewExporter("terraform", l)
	e.Open = func(dir, execPath string) (state.Shower, error) { return shower, nil }
	return e
}

func TestRefreshIndex_ExportLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)
	dir := t.TempDir()
	env := &environment{Dir: dir, Name: "prod", Snapshot: filepath.Join(dir, "terraform.show.json")}

	shower := &stubShower{state: &tfjson.State{
		FormatVersion: "1.0",
		Values: &tfjson.StateValues{
			RootModule: &tfjson.StateModule{
				Resources: []*tfjson.StateResource{{
					Address:         "okta_group.engineering_team",
					Mode:            tfjson.ManagedResourceMode,
					Type:            "okta_group",
					Name:            "engineering_team",
					AttributeValues: map[string]interface{}{"id": "00g1"},
				}},
			},
		},
	}}

	index := refreshIndex(context.Background(), newTestExporter(l, shower), l, env)

	assert.True(t, index.Contains("okta_group", "00g1"))
	assert.Equal(t, 1, logs.FilterMessage("Terraform state exported").Len())
	assert.Equal(t, 1, logs.FilterMessage("Loaded state index").Len())
}

func TestRefreshIndex_ExportFailureDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)
	dir := t.TempDir()
	env := &environment{Dir: dir, Name: "prod", Snapshot: filepath.Join(dir, "terraform.show.json")}

	shower := &stubShower{err: errors.New("no state")}
	index := refreshIndex(context.Background(), newTestExporter(l, shower), l, env)

	assert.Equal(t, 0, index.Len())
	assert.Equal(t, 0, logs.FilterMessage("Terraform state exported").Len())
	assert.Equal(t, 1, logs.FilterMessage("State export failed, using the existing snapshot").Len())
}

func TestRefreshIndex_NoExporter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)
	dir := t.TempDir()
	env := &environment{Dir: dir, Snapshot: filepath.Join(dir, "terraform.show.json")}

	index := refreshIndex(context.Background(), nil, l, env)

	assert.Equal(t, 0, index.Len())
	assert.Equal(t, 0, logs.FilterMessage("Terraform state exported").Len())
}
