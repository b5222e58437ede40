package imports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"okta-import/core/directory"
	"okta-import/core/importblock"
	"okta-import/core/logger"
	"okta-import/core/reconcile"
	"okta-import/core/sink"
	"okta-import/feature/history"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoSink = errors.New("no sink configured")

// Options tunes a Service.
type Options struct {
	// Environment names the target directory in logs and history.
	Environment string
	// SortBy reorders records before reconciling.
	SortBy reconcile.SortKey
	// Index returns the tracked resources. Nil tracks nothing.
	Index func() reconcile.Index
	// CacheTTL keeps previews for this long. Zero disables caching.
	CacheTTL time.Duration
}

// KindReport is the outcome of one kind.
type KindReport struct {
	Kind   reconcile.Kind
	Plan   *reconcile.ImportPlan
	Target string
	Err    error
}

// Partial reports whether the kind was written from a truncated listing.
func (r KindReport) Partial() bool {
	return r.Err == nil && r.Plan != nil && r.Plan.PageErr != nil
}

// Report is the outcome of one generate run.
type Report struct {
	RunID string
	Kinds []KindReport
}

// Err combines the errors of every failed kind.
func (r *Report) Err() error {
	var err error
	for _, k := range r.Kinds {
		err = multierr.Append(err, k.Err)
	}
	return err
}

// Service generates import artifacts.
type Service struct {
	open     directory.Opener
	adapters map[reconcile.Kind]reconcile.Adapter
	sink     sink.Sink
	recorder *history.Recorder
	cache    *reconcile.PlanCache
	logger   *zap.Logger
	opts     Options
}

// NewService creates a new import service. A nil sink serves previews only;
// Generate then fails every kind with a WriteError.
func NewService(open directory.Opener, adapters []reconcile.Adapter, out sink.Sink, recorder *history.Recorder, logger *zap.Logger, opts Options) *Service {
	byKind := make(map[reconcile.Kind]reconcile.Adapter, len(adapters))
	for _, a := range adapters {
		byKind[a.Kind()] = a
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		open:     open,
		adapters: byKind,
		sink:     out,
		recorder: recorder,
		cache:    reconcile.NewPlanCache(opts.CacheTTL),
		logger:   logger,
		opts:     opts,
	}
}

func (s *Service) index() reconcile.Index {
	if s.opts.Index == nil {
		return nil
	}
	return s.opts.Index()
}

func (s *Service) adapter(kind reconcile.Kind) (reconcile.Adapter, error) {
	a, ok := s.adapters[kind]
	if !ok {
		return nil, &reconcile.ConfigurationError{
			Field:  "type",
			Reason: fmt.Sprintf("resource type %q is not enabled", kind),
		}
	}
	return a, nil
}

// Generate reconciles kinds concurrently over one client and writes each
// artifact. Kind failures are reported in the Report; the returned error is
// set when the client cannot be opened or ctx is cancelled.
func (s *Service) Generate(ctx context.Context, kinds []reconcile.Kind) (*Report, error) {
	adapters := make([]reconcile.Adapter, 0, len(kinds))
	for _, kind := range kinds {
		a, err := s.adapter(kind)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	report := &Report{
		RunID: uuid.NewString(),
		Kinds: make([]KindReport, len(adapters)),
	}
	index := s.index()

	err := directory.Use(ctx, s.open, func(ctx context.Context, client directory.Client) error {
		var g errgroup.Group
		for i, a := range adapters {
			g.Go(func() error {
				report.Kinds[i] = s.runKind(ctx, client, index, a, report.RunID)
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Service) runKind(ctx context.Context, client directory.Client, index reconcile.Index, adapter reconcile.Adapter, runID string) KindReport {
	kind := adapter.Kind()
	started := time.Now()
	l := logger.WithKind(s.logger, string(kind))
	rep := KindReport{Kind: kind}

	defer func() {
		run := history.NewRun(runID, s.opts.Environment, kind, rep.Plan, rep.Target, rep.Err, started)
		_ = s.recorder.Record(context.WithoutCancel(ctx), run)
	}()

	plan, err := reconcile.Run(ctx, adapter, client, index, reconcile.Options{SortBy: s.opts.SortBy, Logger: l})
	if err != nil {
		rep.Err = err
		if isCancel(err) {
			l.Warn("Kind abandoned, nothing written", zap.Error(err))
		} else {
			l.Error("Kind failed, nothing written", zap.Error(err))
		}
		return rep
	}
	rep.Plan = plan

	if s.sink == nil {
		rep.Err = &reconcile.WriteError{Kind: kind, Cause: errNoSink}
		l.Error("Failed to write import blocks", zap.Error(rep.Err))
		return rep
	}

	target, err := s.sink.Write(ctx, string(kind), []byte(importblock.Render(plan.Directives)))
	if err != nil {
		if isCancel(err) {
			rep.Err = err
			l.Warn("Kind abandoned, nothing written", zap.Error(err))
			return rep
		}
		rep.Err = &reconcile.WriteError{Kind: kind, Target: target, Cause: err}
		l.Error("Failed to write import blocks", zap.String("target", target), zap.Error(err))
		return rep
	}
	rep.Target = target
	s.cache.Invalidate(string(kind))

	if plan.PageErr != nil {
		l.Warn("Import blocks written from a partial listing",
			zap.String("target", target),
			zap.Int("directives", len(plan.Directives)),
			zap.Error(plan.PageErr),
		)
	} else {
		l.Info("Import blocks written",
			zap.String("target", target),
			zap.Int("directives", len(plan.Directives)),
		)
	}
	return rep
}

// Preview builds the plan of one kind without writing it. Plans are cached
// for Options.CacheTTL.
func (s *Service) Preview(ctx context.Context, kind reconcile.Kind) (*reconcile.ImportPlan, error) {
	adapter, err := s.adapter(kind)
	if err != nil {
		return nil, err
	}

	return s.cache.GetOrBuild(ctx, string(kind), func(ctx context.Context) (*reconcile.ImportPlan, error) {
		var plan *reconcile.ImportPlan
		err := directory.Use(ctx, s.open, func(ctx context.Context, client directory.Client) error {
			p, err := reconcile.Run(ctx, adapter, client, s.index(), reconcile.Options{
				SortBy: s.opts.SortBy,
				Logger: logger.WithKind(s.logger, string(kind)),
			})
			plan = p
			return err
		})
		return plan, err
	})
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
