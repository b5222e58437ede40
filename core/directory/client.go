package directory

import (
	"context"
	"errors"
	"fmt"

	"okta-import/core/paginate"
)

// Record is a provider object copied into engine-local form.
type Record struct {
	// ID is the provider-assigned identifier, used as the import id.
	ID string
	// DisplayName is the human readable name the resource name is derived from.
	DisplayName string
	// Subtype is the provider enum used for type mapping (e.g. sign-on mode).
	Subtype string
	// InternalName is the provider-assigned technical name (e.g. "okta_enduser").
	InternalName string
	// Attributes holds extra string fields usable as sort keys.
	Attributes map[string]string
}

// Cursor walks the pages of a Record listing.
type Cursor = paginate.Cursor[Record]

// Closeable is any resource that must be released once.
type Closeable interface {
	Close() error
}

// Client lists directory resources.
type Client interface {
	Closeable
	// ListUsers returns the first page of users.
	ListUsers(ctx context.Context) ([]Record, Cursor, error)
	// ListGroups returns the first page of groups matching filter.
	ListGroups(ctx context.Context, filter string) ([]Record, Cursor, error)
	// ListApplications returns the first page of applications.
	ListApplications(ctx context.Context) ([]Record, Cursor, error)
}

// Opener constructs a client.
type Opener func(ctx context.Context) (Client, error)

// Use opens a client, passes it to fn and closes it on every exit path.
// A close error is joined with the error returned by fn.
func Use(ctx context.Context, open Opener, fn func(ctx context.Context, c Client) error) (err error) {
	c, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open directory client: %w", err)
	}

	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close directory client: %w", cerr))
		}
	}()

	return fn(ctx, c)
}
