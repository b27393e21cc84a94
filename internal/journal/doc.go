// Package journal persists a history of purge runs in SQLite.
//
// Each run gets one row in the runs table, keyed by the run ID that also tags
// the run's log lines. Every file changed by a removal gets one row in the
// removals table. The journal is append-only from the CLI's point of view;
// it never feeds back into a purge, so a run behaves the same with the
// journal on or off.
//
// The schema is versioned through a schema_version table. A database written
// by a different schema version is rejected with ErrSchemaMismatch rather than
// migrated.
package journal
