package reconcile

import (
	"context"
	"errors"

	"okta-import/core/directory"
	"okta-import/core/paginate"

	"go.uber.org/zap"
)

// Options controls a kind run.
type Options struct {
	// SortBy reorders fetched records before reconciling. Empty keeps provider order.
	SortBy SortKey

	// Logger receives progress and warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Run fetches every record of the adapter's kind and reconciles it against index.
//
// Errors:
//   - *ConfigurationError when the sort key is unknown (before any request).
//   - *FetchError when the first page fails.
//   - the context error when ctx is cancelled; the partial plan is discarded.
//
// A later page failure is not an error: the returned plan is partial and
// carries the failure in PageErr.
func Run(ctx context.Context, adapter Adapter, client directory.Client, index Index, opts Options) (*ImportPlan, error) {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	kind := adapter.Kind()

	var sortKey KeyFunc
	if opts.SortBy != "" {
		fn, err := ResolveSortKey(adapter, opts.SortBy)
		if err != nil {
			return nil, err
		}
		sortKey = fn
	}

	l.Info("Fetching resources", zap.String("kind", string(kind)))

	res, err := paginate.FetchAll(ctx, func(ctx context.Context) ([]directory.Record, directory.Cursor, error) {
		return adapter.List(ctx, client)
	}, l)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &FetchError{Kind: kind, Cause: err}
	}

	l.Info("Retrieved resources",
		zap.String("kind", string(kind)),
		zap.Int("count", len(res.Items)),
		zap.Int("pages", res.Pages),
	)

	records := res.Items
	if sortKey != nil {
		SortRecords(records, sortKey)
	}

	plan := Reconcile(adapter, records, index)
	plan.Summary.Pages = res.Pages
	plan.Summary.Truncated = res.Truncated
	if res.Truncated {
		plan.PageErr = &FetchError{Kind: kind, Partial: true, Cause: res.PageErr}
	}

	for _, w := range plan.Warnings {
		l.Warn("Skipping record",
			zap.String("kind", string(w.Kind)),
			zap.String("id", w.RecordID),
			zap.String("name", w.Name),
			zap.String("subtype", w.Subtype),
			zap.String("reason", w.Reason),
		)
	}

	l.Info("Reconciled resources",
		zap.String("kind", string(kind)),
		zap.Int("emitted", plan.Summary.Emitted),
		zap.Int("already_tracked", plan.Summary.AlreadyTracked),
		zap.Int("unmapped", plan.Summary.Unmapped),
		zap.Int("excluded", plan.Summary.Excluded),
		zap.Bool("truncated", plan.Summary.Truncated),
	)

	return plan, nil
}
