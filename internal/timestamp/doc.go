// Package timestamp provides the immutable time value and range types used
// to express split points for mkvmerge.
//
// A Timestamp is canonically a (total seconds, nanoseconds) pair; the
// hour/minute/second components shown in the HH:MM:SS.nnnnnnnnn wire format
// are always derived, so "90" seconds and "00:01:30" normalize identically.
// TimeRange and FrameRange describe bounded or half-open segments of the
// output timeline consumed by the split builder.
package timestamp
