// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests using it live behind the "integration" build tag and are skipped when
// no database URL is configured:
//
//	LESSONBOARD_TEST_DB_URL=postgres://... go test -tags=integration ./...
//
// Each test runs inside a transaction that is rolled back afterwards, so tests
// do not see each other's rows.
package testdb
