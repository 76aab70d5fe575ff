// Package store exports derived competition results to SQLite.
//
// Each export is a report: a snapshot of every match outcome, every league
// table and every knockout standing at one revision of a competition. The
// document digest is stored with the report so later exports of the same
// document can be matched up.
//
// # Ordering
//
//   - Reports are ordered by seq, a logical counter, never by wall time
//   - Rows within a report keep document order via an explicit ordinal
//   - Report listings break seq ties with COLLATE BINARY on the ID
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
