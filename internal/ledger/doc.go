// Package ledger persists one row per episode run in SQLite so operators can
// see what ran, what failed, and where the artifacts landed.
package ledger
