package okta

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"okta-import/core/directory"
	"okta-import/core/utils"

	oktasdk "github.com/okta/okta-sdk-golang/v2/okta"
	"github.com/okta/okta-sdk-golang/v2/okta/query"
)

// Client implements directory.Client on top of the Okta management SDK.
type Client struct {
	sdk      *oktasdk.Client
	http     *http.Client
	pageSize int64
}

var _ directory.Client = (*Client)(nil)

// NewClient validates cfg and builds an SDK client. Setters in opts are
// applied after the ones derived from cfg.
func NewClient(ctx context.Context, cfg Config, opts ...oktasdk.ConfigSetter) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	setters := []oktasdk.ConfigSetter{
		oktasdk.WithOrgUrl(cfg.OrgURL()),
		oktasdk.WithHttpClientPtr(httpClient),
		oktasdk.WithRequestTimeout(cfg.RequestTimeoutSeconds),
		oktasdk.WithRateLimitMaxRetries(cfg.RateLimitMaxRetries),
		oktasdk.WithCache(false),
	}
	if cfg.UsesToken() {
		setters = append(setters,
			oktasdk.WithAuthorizationMode("SSWS"),
			oktasdk.WithToken(cfg.APIToken),
		)
	} else {
		setters = append(setters,
			oktasdk.WithAuthorizationMode("PrivateKey"),
			oktasdk.WithClientId(cfg.ClientID),
			oktasdk.WithScopes(cfg.Scopes),
			oktasdk.WithPrivateKey(cfg.PrivateKey),
			oktasdk.WithPrivateKeyId(cfg.PrivateKeyID),
		)
	}
	setters = append(setters, opts...)

	_, sdk, err := oktasdk.NewClient(ctx, setters...)
	if err != nil {
		return nil, fmt.Errorf("failed to create okta client: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}

	return &Client{sdk: sdk, http: httpClient, pageSize: pageSize}, nil
}

// Opener returns a directory.Opener building clients from cfg.
func Opener(cfg Config) directory.Opener {
	return func(ctx context.Context) (directory.Client, error) {
		return NewClient(ctx, cfg)
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) ListUsers(ctx context.Context) ([]directory.Record, directory.Cursor, error) {
	users, resp, err := c.sdk.User.ListUsers(ctx, query.NewQueryParams(query.WithLimit(c.pageSize)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}
	return convert(users, userRecord), &pageCursor[*oktasdk.User]{resp: resp, convert: userRecord, what: "users"}, nil
}

func (c *Client) ListGroups(ctx context.Context, filter string) ([]directory.Record, directory.Cursor, error) {
	params := []query.ParamOptions{query.WithLimit(c.pageSize)}
	if filter != "" {
		params = append(params, query.WithSearch(filter))
	}

	groups, resp, err := c.sdk.Group.ListGroups(ctx, query.NewQueryParams(params...))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return convert(groups, groupRecord), &pageCursor[*oktasdk.Group]{resp: resp, convert: groupRecord, what: "groups"}, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]directory.Record, directory.Cursor, error) {
	apps, resp, err := c.sdk.Application.ListApplications(ctx, query.NewQueryParams(query.WithLimit(c.pageSize)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return convert(apps, appRecord), &pageCursor[*oktasdk.Application]{resp: resp, convert: applicationRecord, what: "applications"}, nil
}

// pageCursor follows the Link next header of an SDK response.
type pageCursor[T any] struct {
	resp    *oktasdk.Response
	convert func(T) directory.Record
	what    string
}

func (p *pageCursor[T]) HasNext() bool {
	return p.resp != nil && p.resp.HasNextPage()
}

func (p *pageCursor[T]) Next(ctx context.Context) ([]directory.Record, error) {
	var page []T
	resp, err := p.resp.Next(ctx, &page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch next page of %s: %w", p.what, err)
	}
	p.resp = resp
	return convert(page, p.convert), nil
}

func convert[T any](items []T, fn func(T) directory.Record) []directory.Record {
	records := make([]directory.Record, 0, len(items))
	for _, item := range items {
		records = append(records, fn(item))
	}
	return records
}

func userRecord(u *oktasdk.User) directory.Record {
	if u == nil {
		return directory.Record{}
	}

	var profile oktasdk.UserProfile
	if u.Profile != nil {
		profile = *u.Profile
	}
	login := utils.ToString(profile["login"])

	rec := directory.Record{
		ID:           u.Id,
		DisplayName:  login,
		InternalName: login,
		Attributes: map[string]string{
			"login":      login,
			"email":      utils.ToString(profile["email"]),
			"first_name": utils.ToString(profile["firstName"]),
			"last_name":  utils.ToString(profile["lastName"]),
			"status":     u.Status,
		},
	}
	if u.Type != nil {
		rec.Subtype = u.Type.Id
	}
	return rec
}

func groupRecord(g *oktasdk.Group) directory.Record {
	if g == nil {
		return directory.Record{}
	}

	rec := directory.Record{
		ID:         g.Id,
		Subtype:    g.Type,
		Attributes: map[string]string{},
	}
	if g.Profile != nil {
		rec.DisplayName = g.Profile.Name
		rec.InternalName = g.Profile.Name
		rec.Attributes["description"] = g.Profile.Description
	}
	return rec
}

func applicationRecord(a *oktasdk.Application) directory.Record {
	if a == nil {
		return directory.Record{}
	}
	return directory.Record{
		ID:           a.Id,
		DisplayName:  a.Label,
		Subtype:      a.SignOnMode,
		InternalName: a.Name,
		Attributes: map[string]string{
			"status": a.Status,
		},
	}
}

// appRecord converts the polymorphic first page entries.
func appRecord(app oktasdk.App) directory.Record {
	a, ok := app.(*oktasdk.Application)
	if !ok {
		return directory.Record{DisplayName: fmt.Sprintf("%T", app)}
	}
	return applicationRecord(a)
}
