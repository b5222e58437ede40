// Package state indexes the resources already tracked by Terraform.
//
// The snapshot is the JSON document printed by `terraform show -json`. Every
// managed resource of the root module and of all child modules contributes one
// (type, id) entry. The resulting Index is built once per run and is read-only
// afterwards, so it is safe to share between goroutines.
//
// A missing or unreadable snapshot never fails a run: LoadIndex logs the
// condition and returns an empty index, which makes the importer emit a block
// for every discovered resource.
package state
