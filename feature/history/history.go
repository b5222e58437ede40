package history

import (
	"context"
	"time"

	"okta-import/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportRun is the outcome of one kind in one generate run.
type ImportRun struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	RunID          string    `gorm:"column:run_id;size:36;index"`
	Environment    string    `gorm:"column:environment;size:255;index"`
	Kind           string    `gorm:"column:kind;size:32"`
	Fetched        int       `gorm:"column:fetched"`
	Pages          int       `gorm:"column:pages"`
	Emitted        int       `gorm:"column:emitted"`
	AlreadyTracked int       `gorm:"column:already_tracked"`
	Unmapped       int       `gorm:"column:unmapped"`
	Excluded       int       `gorm:"column:excluded"`
	Truncated      bool      `gorm:"column:truncated"`
	Target         string    `gorm:"column:target;size:1024"`
	Error          string    `gorm:"column:error;type:text"`
	StartedAt      time.Time `gorm:"column:started_at"`
	FinishedAt     time.Time `gorm:"column:finished_at"`
}

// TableName overrides the table name.
func (ImportRun) TableName() string {
	return "import_runs"
}

// NewRun builds a row from a kind outcome. plan may be nil when the kind failed.
func NewRun(runID, environment string, kind reconcile.Kind, plan *reconcile.ImportPlan, target string, err error, started time.Time) ImportRun {
	run := ImportRun{
		ID:          uuid.NewString(),
		RunID:       runID,
		Environment: environment,
		Kind:        string(kind),
		Target:      target,
		StartedAt:   started.UTC(),
		FinishedAt:  time.Now().UTC(),
	}
	if plan != nil {
		s := plan.Summary
		run.Fetched = s.Fetched
		run.Pages = s.Pages
		run.Emitted = s.Emitted
		run.AlreadyTracked = s.AlreadyTracked
		run.Unmapped = s.Unmapped
		run.Excluded = s.Excluded
		run.Truncated = s.Truncated
		if plan.PageErr != nil && err == nil {
			run.Error = plan.PageErr.Error()
		}
	}
	if err != nil {
		run.Error = err.Error()
	}
	return run
}

// Recorder persists import runs.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder. A nil db yields a disabled recorder.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Migrate creates or updates the import_runs table.
func (r *Recorder) Migrate() error {
	if !r.Enabled() {
		return nil
	}
	return r.db.AutoMigrate(&ImportRun{})
}

// Enabled reports whether runs are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.db != nil
}

// Record stores run. Failures are logged and returned.
func (r *Recorder) Record(ctx context.Context, run ImportRun) error {
	if !r.Enabled() {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		r.logger.Warn("Failed to record import run",
			zap.String("kind", run.Kind),
			zap.String("run_id", run.RunID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Recent returns the latest runs of environment, newest first.
func (r *Recorder) Recent(ctx context.Context, environment string, limit int) ([]ImportRun, error) {
	if !r.Enabled() {
		return nil, nil
	}
	var runs []ImportRun
	err := r.db.WithContext(ctx).
		Where("environment = ?", environment).
		Order("finished_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
