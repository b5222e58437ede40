package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"okta-import/core/config"
	"okta-import/core/database"
	"okta-import/core/reconcile"
	"okta-import/core/sink"
	"okta-import/core/state"
	"okta-import/core/storage"
	"okta-import/feature/credentials"
	"okta-import/feature/history"
	"okta-import/feature/okta"

	"go.uber.org/zap"
)

// environment is a resolved target directory.
type environment struct {
	Dir      string
	Name     string
	Okta     okta.Config
	Snapshot string
}

// requireDirectory validates the target argument. Without one it logs the
// candidate directories of the working directory.
func requireDirectory(cfg *config.Config, l *zap.Logger, args []string) (string, error) {
	if len(args) == 0 {
		if dirs, err := credentials.Discover(".", cfg.Import.CredentialsFile); err == nil && len(dirs) > 0 {
			l.Info("Available directories", zap.String("list", strings.Join(dirs, ", ")))
		}
		return "", &reconcile.ConfigurationError{Field: "directory", Reason: "a target directory is required"}
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return "", &reconcile.ConfigurationError{Field: "directory", Reason: "target directory not found", Cause: err}
	}
	if !info.IsDir() {
		return "", &reconcile.ConfigurationError{Field: "directory", Reason: dir + " is not a directory"}
	}
	return dir, nil
}

// resolveEnvironment reads the credentials of dir. No network access happens here.
func resolveEnvironment(ctx context.Context, cfg *config.Config, l *zap.Logger, dir string) (*environment, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	oktaCfg, err := credentials.Resolve(ctx, credentials.Sops{Binary: cfg.Import.SopsBinary}, dir, cfg.Import.CredentialsFile, cfg.Okta, l)
	if err != nil {
		return nil, err
	}

	return &environment{
		Dir:      dir,
		Name:     filepath.Base(abs),
		Okta:     oktaCfg,
		Snapshot: filepath.Join(dir, cfg.Terraform.SnapshotFile),
	}, nil
}

// validateSortKey rejects an unknown import.sort_by before any request.
func validateSortKey(adapters []reconcile.Adapter, key reconcile.SortKey) error {
	if key == "" {
		return nil
	}
	for _, a := range adapters {
		if _, err := reconcile.ResolveSortKey(a, key); err != nil {
			return err
		}
	}
	return nil
}

// stateExporter refreshes a snapshot file from a working directory.
type stateExporter interface {
	Export(ctx context.Context, dir, dest string) error
}

// loadIndex optionally refreshes the snapshot, then loads it. Export failures
// degrade to the snapshot already on disk.
func loadIndex(ctx context.Context, cfg *config.Config, l *zap.Logger, env *environment) *state.Index {
	var exp stateExporter
	if cfg.Terraform.Export {
		exp = state.NewExporter(cfg.Terraform.Binary, l)
	}
	return refreshIndex(ctx, exp, l, env)
}

// refreshIndex runs exp when set, then loads the snapshot. The exporter logs
// its own success.
func refreshIndex(ctx context.Context, exp stateExporter, l *zap.Logger, env *environment) *state.Index {
	if exp != nil {
		if err := exp.Export(ctx, env.Dir, env.Snapshot); err != nil {
			l.Warn("State export failed, using the existing snapshot", zap.Error(err))
		}
	}

	index := state.LoadIndex(env.Snapshot, l)
	l.Info("Loaded state index", zap.Int("tracked", index.Len()))
	return index
}

// newSink builds the configured artifact sink.
func newSink(ctx context.Context, cfg *config.Config, env *environment) (sink.Sink, error) {
	switch cfg.Sink.Type {
	case "", sink.TypeFile:
		return sink.NewFileSink(env.Dir, cfg.Sink.FileName), nil
	case sink.TypeObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		s := sink.NewObjectSink(client, cfg.Storage.Bucket, cfg.Storage.Prefix, env.Name, cfg.Sink.FileName)
		if err := s.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &reconcile.ConfigurationError{
			Field:  "sink.type",
			Reason: fmt.Sprintf("unsupported sink %q (supported: %s, %s)", cfg.Sink.Type, sink.TypeFile, sink.TypeObject),
		}
	}
}

// openRecorder connects the history database when enabled. Failures disable
// history with a warning.
func openRecorder(cfg *config.Config, l *zap.Logger) *history.Recorder {
	if !cfg.Database.Enabled || !cfg.Import.History {
		return history.NewRecorder(nil, l)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		return history.NewRecorder(nil, l)
	}

	recorder := history.NewRecorder(db, l)
	if err := recorder.Migrate(); err != nil {
		l.Warn("Run history migration failed, run history disabled", zap.Error(err))
		return history.NewRecorder(nil, l)
	}
	return recorder
}
