package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIndex(t *testing.T) {
	idx := NewIndex([]Entry{
		{Type: "okta_group", ID: "00g1"},
		{Type: "okta_group", ID: "00g1"},
		{Type: "okta_user", ID: "00u1"},
	})

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains("okta_group", "00g1"))
	assert.True(t, idx.Contains("okta_user", "00u1"))
	assert.False(t, idx.Contains("okta_user", "00g1"), "type is part of the identity")
	assert.False(t, idx.Contains("okta_group", "missing"))
}

func TestIndex_NilIsEmpty(t *testing.T) {
	var idx *Index
	assert.False(t, idx.Contains("okta_group", "00g1"))
	assert.Equal(t, 0, idx.Len())

	var zero Index
	assert.False(t, zero.Contains("okta_group", "00g1"))
}

func TestIndex_ConcurrentReads(t *testing.T) {
	idx := NewIndex([]Entry{{Type: "okta_group", ID: "00g1"}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, idx.Contains("okta_group", "00g1"))
		}()
	}
	wg.Wait()
}

func TestLoadFile(t *testing.T) {
	entries, err := LoadFile(filepath.Join("testdata", "show.json"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []Entry{
		{Type: "okta_group", ID: "00g1engineering"},
		{Type: "okta_user", ID: "00u1jane"},
		{Type: "okta_app_saml", ID: "0oa1wiki"},
	}, entries, "data sources and resources without id are ignored")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParse(t *testing.T) {
	t.Run("EmptyState", func(t *testing.T) {
		entries, err := Parse([]byte(`{"format_version":"1.0"}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := Parse([]byte(`not json`))
		assert.Error(t, err)
	})

	t.Run("MissingFormatVersion", func(t *testing.T) {
		_, err := Parse([]byte(`{}`))
		assert.Error(t, err)
	})
}

func TestLoadIndex_Degrades(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))

	tests := []struct {
		name  string
		path  string
		level zapcore.Level
	}{
		{name: "Absent", path: filepath.Join(dir, "absent.json"), level: zapcore.InfoLevel},
		{name: "Unparseable", path: broken, level: zapcore.WarnLevel},
		{name: "NotConfigured", path: "", level: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			idx := LoadIndex(tt.path, zap.New(core))

			require.NotNil(t, idx)
			assert.Equal(t, 0, idx.Len())
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level)
		})
	}
}

func TestLoadIndex_Valid(t *testing.T) {
	idx := LoadIndex(filepath.Join("testdata", "show.json"), nil)
	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Contains("okta_app_saml", "0oa1wiki"))
}

type fakeShower struct {
	state *tfjson.State
	err   error
}

func (f *fakeShower) Show(ctx context.Context, opts ...tfexec.ShowOption) (*tfjson.State, error) {
	return f.state, f.err
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "terraform.show.json")

	st := &tfjson.State{
		FormatVersion: "1.0",
		Values: &tfjson.StateValues{
			RootModule: &tfjson.StateModule{
				Resources: []*tfjson.StateResource{{
					Address:         "okta_user.jane",
					Mode:            tfjson.ManagedResourceMode,
					Type:            "okta_user",
					Name:            "jane",
					AttributeValues: map[string]interface{}{"id": "00u1jane"},
				}},
			},
		},
	}

	var openedDir string
	e := NewExporter("terraform", nil)
	e.Open = func(d, execPath string) (Shower, error) {
		openedDir = d
		return &fakeShower{state: st}, nil
	}

	require.NoError(t, e.Export(context.Background(), dir, dest))
	assert.Equal(t, dir, openedDir)

	entries, err := LoadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Type: "okta_user", ID: "00u1jane"}}, entries)
}

func TestExporter_ExportFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "terraform.show.json")

	e := NewExporter("terraform", nil)
	e.Open = func(d, execPath string) (Shower, error) {
		return &fakeShower{err: errors.New("no backend")}, nil
	}

	err := e.Export(context.Background(), t.TempDir(), dest)
	assert.Error(t, err)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "failed export must not create the snapshot")
}
