// Package settings persists equalizer configuration as a single
// process-wide record with last-write-wins semantics.
//
// The store reads and writes one whole record per operation: backends
// replace the stored value atomically, never field by field, so a
// concurrent reader can never observe a torn record. Persistence is
// best-effort — storage failures are logged and swallowed, the
// in-memory chain state stays authoritative, and the next write
// naturally supersedes a failed one.
package settings
