package okta

import (
	"context"
	"fmt"

	"okta-import/core/directory"
	"okta-import/core/reconcile"
)

// Extra sort keys exposed by the Okta adapters.
const (
	SortByLogin  reconcile.SortKey = "login"
	SortByEmail  reconcile.SortKey = "email"
	SortByStatus reconcile.SortKey = "status"
	SortByLabel  reconcile.SortKey = "label"
)

// UsersAdapter reconciles Okta users.
type UsersAdapter struct{}

func (UsersAdapter) Kind() reconcile.Kind { return reconcile.KindUsers }

func (UsersAdapter) List(ctx context.Context, client directory.Client) ([]directory.Record, directory.Cursor, error) {
	return client.ListUsers(ctx)
}

// MapType maps every user to okta_user regardless of its user type.
func (UsersAdapter) MapType(string) (string, bool) { return ResourceUser, true }

func (UsersAdapter) Secondary(string) []string { return nil }

func (UsersAdapter) Excluded(directory.Record) bool { return false }

func (UsersAdapter) SortKeys() map[reconcile.SortKey]reconcile.KeyFunc {
	return map[reconcile.SortKey]reconcile.KeyFunc{
		SortByLogin:  reconcile.AttributeKey("login"),
		SortByEmail:  reconcile.AttributeKey("email"),
		SortByStatus: reconcile.AttributeKey("status"),
	}
}

// GroupsAdapter reconciles Okta groups matching Filter.
type GroupsAdapter struct {
	Filter string
}

func (GroupsAdapter) Kind() reconcile.Kind { return reconcile.KindGroups }

func (a GroupsAdapter) List(ctx context.Context, client directory.Client) ([]directory.Record, directory.Cursor, error) {
	return client.ListGroups(ctx, a.Filter)
}

// MapType maps OKTA_GROUP to okta_group. APP_GROUP and BUILT_IN are unmapped.
func (GroupsAdapter) MapType(subtype string) (string, bool) {
	if subtype == groupTypeOkta {
		return ResourceGroup, true
	}
	return "", false
}

func (GroupsAdapter) Secondary(string) []string { return nil }

func (GroupsAdapter) Excluded(directory.Record) bool { return false }

func (GroupsAdapter) SortKeys() map[reconcile.SortKey]reconcile.KeyFunc {
	return map[reconcile.SortKey]reconcile.KeyFunc{
		"description": reconcile.AttributeKey("description"),
	}
}

// ApplicationsAdapter reconciles Okta applications.
type ApplicationsAdapter struct{}

func (ApplicationsAdapter) Kind() reconcile.Kind { return reconcile.KindApplications }

func (ApplicationsAdapter) List(ctx context.Context, client directory.Client) ([]directory.Record, directory.Cursor, error) {
	return client.ListApplications(ctx)
}

func (ApplicationsAdapter) MapType(signOnMode string) (string, bool) {
	return MapApplicationType(signOnMode)
}

// Secondary adds the group assignment resource of every application.
func (ApplicationsAdapter) Secondary(string) []string {
	return []string{ResourceAppGroupAssignments}
}

func (ApplicationsAdapter) Excluded(rec directory.Record) bool {
	return IsBuiltinApplication(rec.InternalName)
}

func (ApplicationsAdapter) SortKeys() map[reconcile.SortKey]reconcile.KeyFunc {
	return map[reconcile.SortKey]reconcile.KeyFunc{
		SortByLabel:  func(rec directory.Record) string { return rec.DisplayName },
		SortByStatus: reconcile.AttributeKey("status"),
	}
}

// AdapterFor returns the adapter of kind.
func AdapterFor(kind reconcile.Kind, cfg Config) (reconcile.Adapter, error) {
	switch kind {
	case reconcile.KindUsers:
		return UsersAdapter{}, nil
	case reconcile.KindGroups:
		return GroupsAdapter{Filter: cfg.GroupFilter}, nil
	case reconcile.KindApplications:
		return ApplicationsAdapter{}, nil
	default:
		return nil, fmt.Errorf("no adapter for kind %q", kind)
	}
}

// Adapters returns the adapters of kinds, in order.
func Adapters(kinds []reconcile.Kind, cfg Config) ([]reconcile.Adapter, error) {
	adapters := make([]reconcile.Adapter, 0, len(kinds))
	for _, kind := range kinds {
		a, err := AdapterFor(kind, cfg)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
