// Package auth issues and validates the signed tokens that carry a user
// session, and verifies passwords against their bcrypt hashes.
package auth
