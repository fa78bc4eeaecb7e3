// Package identcache persists mkvmerge identification results in SQLite so
// repeated inspections of an unchanged file skip the external tool.
//
// Entries are keyed by absolute path and validated against the file's
// current size and modification time; a stale entry is treated as a miss.
// A file lock serializes cache access across processes.
package identcache
