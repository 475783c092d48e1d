// Package mocks provides shared test doubles for the store and auth interfaces.
//
// The store mocks keep their records in memory and honour the same error
// contracts as the Postgres stores (not-found, duplicate, in-use), so handler
// tests can exercise full request flows without a database. Every method can
// be overridden through its Fn field:
//
//	categories := mocks.NewMockCategoryStore()
//	categories.DeleteFn = func(ctx context.Context, id int64) error {
//	    return errors.New("boom")
//	}
package mocks
