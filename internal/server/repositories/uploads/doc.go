// Package uploads stores confirmed uploads in PostgreSQL.
//
// Rows are keyed by storage path. Inserting a path that is already recorded
// is not an error: Insert reports it as a replay so confirmation stays
// idempotent.
package uploads
