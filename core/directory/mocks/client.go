package mocks

import (
	"context"

	"okta-import/core/directory"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of directory.Client
type Client struct {
	mock.Mock
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Client) ListUsers(ctx context.Context) ([]directory.Record, directory.Cursor, error) {
	args := m.Called(ctx)
	return records(args.Get(0)), cursor(args.Get(1)), args.Error(2)
}

func (m *Client) ListGroups(ctx context.Context, filter string) ([]directory.Record, directory.Cursor, error) {
	args := m.Called(ctx, filter)
	return records(args.Get(0)), cursor(args.Get(1)), args.Error(2)
}

func (m *Client) ListApplications(ctx context.Context) ([]directory.Record, directory.Cursor, error) {
	args := m.Called(ctx)
	return records(args.Get(0)), cursor(args.Get(1)), args.Error(2)
}

func records(v any) []directory.Record {
	if r, ok := v.([]directory.Record); ok {
		return r
	}
	return nil
}

func cursor(v any) directory.Cursor {
	if c, ok := v.(directory.Cursor); ok {
		return c
	}
	return nil
}

// Pages is a cursor serving fixed pages. A non-nil entry in Errs fails the
// page with the same index.
type Pages struct {
	Pages [][]directory.Record
	Errs  []error
	next  int
}

func (p *Pages) HasNext() bool {
	return p.next < len(p.Pages)
}

func (p *Pages) Next(ctx context.Context) ([]directory.Record, error) {
	i := p.next
	p.next++
	if i < len(p.Errs) && p.Errs[i] != nil {
		return nil, p.Errs[i]
	}
	return p.Pages[i], nil
}
