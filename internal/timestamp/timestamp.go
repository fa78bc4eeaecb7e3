package timestamp

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
	nanosPerSecond   = 1_000_000_000
	nanoPrecision    = 9
)

// Sentinel errors for timestamp construction failures.
var (
	ErrInvalidFormat = errors.New("invalid timestamp format")
	ErrOutOfRange    = errors.New("timestamp value out of range")
)

// stringPattern accepts [H]H:MM:SS[.n{1,9}] and [M]M:SS[.n{1,9}].
var stringPattern = regexp.MustCompile(`^\d{1,2}(:\d{1,2}){1,2}(\.\d{1,9})?$`)

// Timestamp is an immutable point in time with second and nanosecond
// precision, formatted for mkvmerge as HH:MM:SS.nnnnnnnnn. The canonical
// representation is (total seconds, nanoseconds); hour/minute/second
// components are always derived so every instant has exactly one encoding.
type Timestamp struct {
	totalSeconds int64
	nanoseconds  int32
}

// New constructs a timestamp from canonical values.
func New(totalSeconds int64, nanoseconds int32) (Timestamp, error) {
	if totalSeconds < 0 {
		return Timestamp{}, fmt.Errorf("%w: total seconds must be non-negative, got %d", ErrOutOfRange, totalSeconds)
	}
	if nanoseconds < 0 || nanoseconds >= nanosPerSecond {
		return Timestamp{}, fmt.Errorf("%w: nanoseconds must be 0-%d, got %d", ErrOutOfRange, nanosPerSecond-1, nanoseconds)
	}
	return Timestamp{totalSeconds: totalSeconds, nanoseconds: nanoseconds}, nil
}

// MustNew is New for trusted values; it panics on error. Intended for tests
// and compile-time constants.
func MustNew(totalSeconds int64, nanoseconds int32) Timestamp {
	ts, err := New(totalSeconds, nanoseconds)
	if err != nil {
		panic(err)
	}
	return ts
}

// Parse builds a timestamp from a string like "HH:MM:SS.nnnnnnnnn".
// Two colon groups are read as MM:SS, three as HH:MM:SS. A fractional part
// shorter than nine digits is right-padded with zeros, so "1.5" means half a
// second, not five nanoseconds.
func Parse(value string) (Timestamp, error) {
	if !stringPattern.MatchString(value) {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}

	groups := strings.Split(value, ":")
	var hh, mm, rest string
	if len(groups) == 2 {
		hh = "0"
		mm, rest = groups[0], groups[1]
	} else {
		hh, mm, rest = groups[0], groups[1], groups[2]
	}

	ss := rest
	var nanoseconds int64
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		ss = rest[:dot]
		frac := rest[dot+1:]
		padded := frac + strings.Repeat("0", nanoPrecision-len(frac))
		parsed, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
		}
		nanoseconds = parsed
	}

	hours, _ := strconv.ParseInt(hh, 10, 64)
	minutes, _ := strconv.ParseInt(mm, 10, 64)
	seconds, _ := strconv.ParseInt(ss, 10, 64)

	total := hours*secondsPerHour + minutes*secondsPerMinute + seconds
	return New(total, int32(nanoseconds))
}

// FromSeconds builds a timestamp from a possibly fractional second count.
// The fractional remainder is truncated to nanoseconds, not rounded.
func FromSeconds(seconds float64) (Timestamp, error) {
	if seconds < 0 {
		return Timestamp{}, fmt.Errorf("%w: seconds must be non-negative, got %v", ErrOutOfRange, seconds)
	}
	total := int64(seconds)
	nanos := int64((seconds - float64(total)) * nanosPerSecond)
	return New(total, int32(nanos))
}

// FromComponents builds a timestamp from individual time components.
// Hours is unbounded; minutes and seconds must be within [0, 59].
func FromComponents(hours, minutes, seconds int64, nanoseconds int32) (Timestamp, error) {
	if hours < 0 {
		return Timestamp{}, fmt.Errorf("%w: hours must be non-negative, got %d", ErrOutOfRange, hours)
	}
	if minutes < 0 || minutes >= 60 {
		return Timestamp{}, fmt.Errorf("%w: minutes must be 0-59, got %d", ErrOutOfRange, minutes)
	}
	if seconds < 0 || seconds >= 60 {
		return Timestamp{}, fmt.Errorf("%w: seconds must be 0-59, got %d", ErrOutOfRange, seconds)
	}
	total := hours*secondsPerHour + minutes*secondsPerMinute + seconds
	return New(total, nanoseconds)
}

// String renders the canonical form: HH:MM:SS when the nanosecond part is
// zero, otherwise HH:MM:SS.n with trailing fractional zeros stripped.
func (t Timestamp) String() string {
	if t.nanoseconds == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hours(), t.Minutes(), t.Seconds())
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", t.nanoseconds), "0")
	return fmt.Sprintf("%02d:%02d:%02d.%s", t.Hours(), t.Minutes(), t.Seconds(), frac)
}

// TotalSeconds returns the whole-second part of the timestamp.
func (t Timestamp) TotalSeconds() int64 { return t.totalSeconds }

// Nanoseconds returns the sub-second part in nanoseconds.
func (t Timestamp) Nanoseconds() int32 { return t.nanoseconds }

// Hours returns the derived hour component.
func (t Timestamp) Hours() int64 { return t.totalSeconds / secondsPerHour }

// Minutes returns the derived minute component (0-59).
func (t Timestamp) Minutes() int64 { return (t.totalSeconds % secondsPerHour) / secondsPerMinute }

// Seconds returns the derived second component (0-59).
func (t Timestamp) Seconds() int64 { return t.totalSeconds % secondsPerMinute }

// Compare orders timestamps lexicographically on (seconds, nanoseconds).
// It returns -1, 0, or 1 in the manner of strings.Compare.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.totalSeconds < other.totalSeconds:
		return -1
	case t.totalSeconds > other.totalSeconds:
		return 1
	case t.nanoseconds < other.nanoseconds:
		return -1
	case t.nanoseconds > other.nanoseconds:
		return 1
	default:
		return 0
	}
}

// Equal reports exact equality on both fields; there is no tolerance.
func (t Timestamp) Equal(other Timestamp) bool { return t.Compare(other) == 0 }

// Less reports whether t precedes other.
func (t Timestamp) Less(other Timestamp) bool { return t.Compare(other) < 0 }
