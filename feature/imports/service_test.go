package imports_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"okta-import/core/database"
	"okta-import/core/directory"
	"okta-import/core/directory/mocks"
	"okta-import/core/reconcile"
	"okta-import/core/sink"
	"okta-import/core/state"
	"okta-import/feature/history"
	"okta-import/feature/imports"
	"okta-import/feature/okta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	users = []directory.Record{
		{ID: "00u1", DisplayName: "jane@acme.test"},
		{ID: "00u2", DisplayName: "john@acme.test"},
	}
	groups = []directory.Record{
		{ID: "00g1", DisplayName: "Engineering Team", Subtype: "OKTA_GROUP"},
	}
)

type failingSink struct{}

func (failingSink) Write(ctx context.Context, kind string, body []byte) (string, error) {
	return "/readonly/" + kind + "/import.tf", errors.New("read-only file system")
}

func adapters() []reconcile.Adapter {
	return []reconcile.Adapter{okta.UsersAdapter{}, okta.GroupsAdapter{Filter: `type eq "OKTA_GROUP"`}, okta.ApplicationsAdapter{}}
}

func opener(c directory.Client) directory.Opener {
	return func(ctx context.Context) (directory.Client, error) { return c, nil }
}

func newService(t *testing.T, client *mocks.Client, out sink.Sink, recorder *history.Recorder, opts imports.Options) *imports.Service {
	t.Helper()
	return imports.NewService(opener(client), adapters(), out, recorder, zap.NewNop(), opts)
}

func TestGenerate_WritesEveryKind(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil)
	client.On("ListGroups", mock.Anything, `type eq "OKTA_GROUP"`).Return(groups, nil, nil)
	client.On("Close").Return(nil).Once()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	recorder := history.NewRecorder(db, zap.NewNop())
	require.NoError(t, recorder.Migrate())

	index := state.NewIndex([]state.Entry{{Type: "okta_user", ID: "00u2"}})
	svc := newService(t, client, sink.NewFileSink(dir, "import.tf"), recorder, imports.Options{
		Environment: "prod",
		Index:       func() reconcile.Index { return index },
	})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers, reconcile.KindGroups})
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Len(t, report.Kinds, 2)
	assert.Equal(t, reconcile.KindUsers, report.Kinds[0].Kind)
	assert.Equal(t, reconcile.KindGroups, report.Kinds[1].Kind)

	body, err := os.ReadFile(filepath.Join(dir, "users", "import.tf"))
	require.NoError(t, err)
	assert.Equal(t, "import {\n  to = okta_user.jane_acme_test\n  id = \"00u1\"\n}\n", string(body))

	body, err = os.ReadFile(filepath.Join(dir, "groups", "import.tf"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "okta_group.engineering_team")

	runs, err := recorder.Recent(context.Background(), "prod", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	for _, run := range runs {
		assert.Equal(t, report.RunID, run.RunID)
	}

	client.AssertExpectations(t)
}

func TestGenerate_FirstPageFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil)
	client.On("ListGroups", mock.Anything, mock.Anything).Return(nil, nil, errors.New("403 forbidden"))
	client.On("Close").Return(nil)

	svc := newService(t, client, sink.NewFileSink(dir, "import.tf"), nil, imports.Options{})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers, reconcile.KindGroups})
	require.NoError(t, err)

	assert.NoError(t, report.Kinds[0].Err)
	assert.FileExists(t, filepath.Join(dir, "users", "import.tf"))

	var fetchErr *reconcile.FetchError
	require.ErrorAs(t, report.Kinds[1].Err, &fetchErr)
	assert.Equal(t, reconcile.KindGroups, fetchErr.Kind)
	assert.False(t, fetchErr.Partial)
	assert.NoFileExists(t, filepath.Join(dir, "groups", "import.tf"))

	require.Error(t, report.Err())
	assert.ErrorAs(t, report.Err(), &fetchErr)
}

func TestGenerate_PartialListingIsWritten(t *testing.T) {
	dir := t.TempDir()
	cursor := &mocks.Pages{Pages: [][]directory.Record{nil}, Errs: []error{errors.New("connection reset")}}

	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, directory.Cursor(cursor), nil)
	client.On("Close").Return(nil)

	svc := newService(t, client, sink.NewFileSink(dir, "import.tf"), nil, imports.Options{})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.True(t, report.Kinds[0].Partial())
	assert.Len(t, report.Kinds[0].Plan.Directives, 2)
	assert.FileExists(t, filepath.Join(dir, "users", "import.tf"))
}

func TestGenerate_CancelledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("Close").Return(nil).Once()

	svc := newService(t, client, sink.NewFileSink(dir, "import.tf"), nil, imports.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Generate(ctx, reconcile.AllKinds)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	for _, k := range report.Kinds {
		assert.ErrorIs(t, k.Err, context.Canceled)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	client.AssertExpectations(t)
}

func TestGenerate_WriteFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil)
	client.On("Close").Return(nil)

	svc := newService(t, client, failingSink{}, nil, imports.Options{})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers})
	require.NoError(t, err)

	var writeErr *reconcile.WriteError
	require.ErrorAs(t, report.Err(), &writeErr)
	assert.Equal(t, "/readonly/users/import.tf", writeErr.Target)
}

func TestGenerate_UnknownKindBeforeOpen(t *testing.T) {
	opened := false
	svc := imports.NewService(func(ctx context.Context) (directory.Client, error) {
		opened = true
		return nil, errors.New("unexpected")
	}, []reconcile.Adapter{okta.UsersAdapter{}}, failingSink{}, nil, nil, imports.Options{})

	_, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindGroups})

	var cfgErr *reconcile.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.False(t, opened)
}

func TestGenerate_OpenFailure(t *testing.T) {
	svc := imports.NewService(func(ctx context.Context) (directory.Client, error) {
		return nil, errors.New("invalid private key")
	}, adapters(), failingSink{}, nil, nil, imports.Options{})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers})
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "invalid private key")
}

func TestPreview_Cached(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil).Once()
	client.On("Close").Return(nil).Once()

	svc := newService(t, client, failingSink{}, nil, imports.Options{CacheTTL: time.Minute})

	first, err := svc.Preview(context.Background(), reconcile.KindUsers)
	require.NoError(t, err)
	second, err := svc.Preview(context.Background(), reconcile.KindUsers)
	require.NoError(t, err)

	assert.Same(t, first, second)
	client.AssertExpectations(t)
}

func TestPreview_WithoutSink(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil)
	client.On("Close").Return(nil)

	svc := newService(t, client, nil, nil, imports.Options{})

	plan, err := svc.Preview(context.Background(), reconcile.KindUsers)
	require.NoError(t, err)
	assert.Len(t, plan.Directives, 2)
	client.AssertExpectations(t)
}

func TestGenerate_WithoutSink(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListUsers", mock.Anything).Return(users, nil, nil)
	client.On("Close").Return(nil)

	svc := newService(t, client, nil, nil, imports.Options{})

	report, err := svc.Generate(context.Background(), []reconcile.Kind{reconcile.KindUsers})
	require.NoError(t, err)

	var writeErr *reconcile.WriteError
	require.ErrorAs(t, report.Err(), &writeErr)
	assert.Equal(t, reconcile.KindUsers, writeErr.Kind)
	assert.ErrorContains(t, writeErr, "no sink configured")
}
