// Package mkvmerge wraps the mkvmerge command-line tool.
//
// Key responsibilities:
//   - Typed decoding of `mkvmerge --identify` JSON output (Identification,
//     Container, Track, Attachment).
//   - Process execution with the mkvmerge exit-code contract: 0 is success,
//     1 completed with warnings (output still returned), 2 and above is a
//     hard failure surfaced as *ProcessError with captured streams.
//   - Verification helpers for binary presence and container support.
//
// The binary location is an explicit Client field injected from
// configuration; nothing in this package keeps process-global state. Command
// execution goes through the Executor interface so tests can substitute a
// fake process.
package mkvmerge
