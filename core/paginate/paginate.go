package paginate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Cursor walks the pages following the first one.
type Cursor[T any] interface {
	// HasNext reports whether another page can be requested.
	HasNext() bool
	// Next requests the following page.
	Next(ctx context.Context) ([]T, error)
}

// Lister issues the initial listing request.
type Lister[T any] func(ctx context.Context) ([]T, Cursor[T], error)

// Result is the outcome of a complete fetch.
type Result[T any] struct {
	// Items holds every item received, in provider order.
	Items []T
	// Pages is the number of pages successfully received.
	Pages int
	// Truncated is true when a later page failed and pagination stopped early.
	Truncated bool
	// PageErr is the error that truncated the fetch, if any.
	PageErr error
}

// FirstPageError reports a failure of the initial listing request.
type FirstPageError struct {
	Cause error
}

func (e *FirstPageError) Error() string {
	return fmt.Sprintf("first page request failed: %v", e.Cause)
}

func (e *FirstPageError) Unwrap() error {
	return e.Cause
}

// FetchAll drains the listing. Only one request is in flight at any time.
// Cancelling ctx stops pagination and returns the context error together with
// the items received so far; callers abandon the fetch in that case.
func FetchAll[T any](ctx context.Context, list Lister[T], logger *zap.Logger) (*Result[T], error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := ctx.Err(); err != nil {
		return &Result[T]{}, err
	}

	items, cursor, err := list(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Result[T]{}, ctxErr
		}
		return &Result[T]{}, &FirstPageError{Cause: err}
	}

	res := &Result[T]{Pages: 1}
	res.Items = append(res.Items, items...)

	for cursor != nil && cursor.HasNext() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		page, err := cursor.Next(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			logger.Warn("Page request failed, keeping partial results",
				zap.Int("pages", res.Pages),
				zap.Int("items", len(res.Items)),
				zap.Error(err),
			)
			res.Truncated = true
			res.PageErr = err
			break
		}

		res.Pages++
		res.Items = append(res.Items, page...)
	}

	return res, nil
}
