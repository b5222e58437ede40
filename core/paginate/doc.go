// Package paginate drains cursor based listing APIs.
//
// FetchAll issues the first request, then follows the cursor one page at a time
// until it is exhausted. A failure on the first page fails the whole fetch; a
// failure on a later page is logged, stops pagination and keeps every item
// already received. Items are returned in the order the provider delivered them.
//
// # Usage
//
//	res, err := paginate.FetchAll(ctx, func(ctx context.Context) ([]directory.Record, paginate.Cursor[directory.Record], error) {
//	    return client.ListUsers(ctx)
//	}, logger)
package paginate
