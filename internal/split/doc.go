// Package split builds mkvmerge --split directives.
//
// A Spec holds exactly one active split mode (size, duration, timestamps,
// frames, parts, parts-frames, or chapters); constructing a new spec never
// accumulates onto an old one. Part modes validate that their ranges
// partition a single linear timeline: an open start is legal only on the
// first range, an open end only on the last, every bounded range runs
// forward, and consecutive ranges never overlap. Validation failures name
// the offending range index so authoring mistakes are actionable before
// mkvmerge ever sees the command.
package split
