package split

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mkvmux/internal/timestamp"
)

// Sentinel errors for split specification failures.
var (
	ErrOrdering      = errors.New("split ranges out of order")
	ErrConfiguration = errors.New("invalid split configuration")
	ErrRange         = errors.New("split value out of range")
)

// Mode identifies the active split strategy.
type Mode int

const (
	ModeNone Mode = iota
	ModeSize
	ModeDuration
	ModeTimestamps
	ModeFrames
	ModeParts
	ModePartsFrames
	ModeChapters
)

// String returns the mkvmerge literal for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSize:
		return "size"
	case ModeDuration:
		return "duration"
	case ModeTimestamps:
		return "timestamps"
	case ModeFrames:
		return "frames"
	case ModeParts:
		return "parts"
	case ModePartsFrames:
		return "parts-frames"
	case ModeChapters:
		return "chapters"
	default:
		return "none"
	}
}

// Spec is one validated split directive. The zero value means "no split".
// Specs are immutable once constructed; selecting a different mode means
// building a new Spec.
type Spec struct {
	mode    Mode
	encoded string
	link    bool
}

// None returns the empty split directive.
func None() Spec { return Spec{} }

// Mode reports the active split mode.
func (s Spec) Mode() Mode { return s.mode }

// Encoded returns the canonical mode:payload string, or "" for no split.
func (s Spec) Encoded() string { return s.encoded }

// WithLink returns a copy of the spec with file linking toggled. Linking is
// orthogonal to the split mode and adds a single --link token.
func (s Spec) WithLink(link bool) Spec {
	s.link = link
	return s
}

// Args renders the mkvmerge tokens for the directive. A none spec renders
// nothing.
func (s Spec) Args() []string {
	if s.mode == ModeNone {
		return nil
	}
	args := []string{"--split", s.encoded}
	if s.link {
		args = append(args, "--link")
	}
	return args
}

// BySize splits the output every size bytes.
func BySize(size int64) (Spec, error) {
	if size <= 0 {
		return Spec{}, fmt.Errorf("%w: size must be a positive byte count, got %d", ErrRange, size)
	}
	return Spec{mode: ModeSize, encoded: fmt.Sprintf("size:%d", size)}, nil
}

// ByDuration splits the output every duration seconds. The duration is
// embedded in its canonical timestamp form.
func ByDuration(seconds float64) (Spec, error) {
	ts, err := timestamp.FromSeconds(seconds)
	if err != nil {
		return Spec{}, err
	}
	return Spec{mode: ModeDuration, encoded: "duration:" + ts.String()}, nil
}

// ByTimestamps splits at each given timestamp. The emitted sequence is
// sorted ascending regardless of argument order.
func ByTimestamps(timestamps ...timestamp.Timestamp) (Spec, error) {
	if len(timestamps) == 0 {
		return Spec{}, fmt.Errorf("%w: at least one timestamp must be specified", ErrConfiguration)
	}
	sorted := slices.Clone(timestamps)
	slices.SortFunc(sorted, timestamp.Timestamp.Compare)
	parts := make([]string, 0, len(sorted))
	for _, ts := range sorted {
		parts = append(parts, ts.String())
	}
	return Spec{mode: ModeTimestamps, encoded: "timestamps:" + strings.Join(parts, ",")}, nil
}

// ByFrames splits before each given frame number. The emitted sequence is
// sorted ascending regardless of argument order.
func ByFrames(frames ...int64) (Spec, error) {
	if len(frames) == 0 {
		return Spec{}, fmt.Errorf("%w: at least one frame must be specified", ErrConfiguration)
	}
	sorted := slices.Clone(frames)
	slices.Sort(sorted)
	if sorted[0] < 1 {
		return Spec{}, fmt.Errorf("%w: frame numbers start at 1, got %d", ErrRange, sorted[0])
	}
	parts := make([]string, 0, len(sorted))
	for _, frame := range sorted {
		parts = append(parts, strconv.FormatInt(frame, 10))
	}
	return Spec{mode: ModeFrames, encoded: "frames:" + strings.Join(parts, ",")}, nil
}

// ByParts keeps only the given time ranges of the source, one output file
// per range unless a range appends to its predecessor.
func ByParts(ranges []timestamp.TimeRange) (Spec, error) {
	bounds := make([]rangeBounds[timestamp.Timestamp], 0, len(ranges))
	for _, r := range ranges {
		bounds = append(bounds, rangeBounds[timestamp.Timestamp]{
			start:            r.Start,
			end:              r.End,
			appendToPrevious: r.AppendToPrevious,
		})
	}
	encoded, err := encodeParts("parts", bounds, timestamp.Timestamp.Compare, timestamp.Timestamp.String, nil)
	if err != nil {
		return Spec{}, err
	}
	return Spec{mode: ModeParts, encoded: encoded}, nil
}

// ByPartsFrames is ByParts over frame numbers instead of timestamps.
func ByPartsFrames(ranges []timestamp.FrameRange) (Spec, error) {
	bounds := make([]rangeBounds[int64], 0, len(ranges))
	for _, r := range ranges {
		bounds = append(bounds, rangeBounds[int64]{
			start:            r.Start,
			end:              r.End,
			appendToPrevious: r.AppendToPrevious,
		})
	}
	checkFrame := func(index int, boundary string, frame int64) error {
		if frame < 1 {
			return fmt.Errorf("%w: range %d: %s frame must be >= 1 (frame numbering starts at 1), got %d",
				ErrRange, index, boundary, frame)
		}
		return nil
	}
	encoded, err := encodeParts("parts-frames", bounds,
		func(a, b int64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		},
		func(frame int64) string { return strconv.FormatInt(frame, 10) },
		checkFrame,
	)
	if err != nil {
		return Spec{}, err
	}
	return Spec{mode: ModePartsFrames, encoded: encoded}, nil
}

// ByChapters splits before each of the given chapter numbers.
func ByChapters(chapters []int) (Spec, error) {
	if len(chapters) == 0 {
		return Spec{}, fmt.Errorf("%w: at least one chapter number must be specified", ErrConfiguration)
	}
	parts := make([]string, 0, len(chapters))
	for _, chapter := range chapters {
		if chapter < 1 {
			return Spec{}, fmt.Errorf("%w: chapter numbers must be positive integers >= 1, got %d", ErrRange, chapter)
		}
		parts = append(parts, strconv.Itoa(chapter))
	}
	return Spec{mode: ModeChapters, encoded: "chapters:" + strings.Join(parts, ",")}, nil
}

// ByAllChapters splits before every chapter.
func ByAllChapters() Spec {
	return Spec{mode: ModeChapters, encoded: "chapters:all"}
}

// rangeBounds is the shared shape part validation operates on; nil pointers
// are open boundaries.
type rangeBounds[T any] struct {
	start            *T
	end              *T
	appendToPrevious bool
}

// encodeParts validates a range list against the ordering invariants and
// renders the canonical parts string. The algorithm is identical for time
// and frame ranges; only the comparison, rendering, and the optional
// per-boundary check differ.
func encodeParts[T any](prefix string, ranges []rangeBounds[T], compare func(a, b T) int, render func(T) string, checkBoundary func(index int, boundary string, value T) error) (string, error) {
	if len(ranges) == 0 {
		return "", fmt.Errorf("%w: at least one range must be specified", ErrConfiguration)
	}

	last := len(ranges) - 1
	var prevEnd *T
	for i, r := range ranges {
		openStartOK := i == 0
		openEndOK := i == last
		if (r.start == nil && !openStartOK) || (r.end == nil && !openEndOK) {
			return "", fmt.Errorf("%w: range %d: only the first range may have an open start and only the last an open end", ErrConfiguration, i)
		}

		if checkBoundary != nil {
			if r.start != nil {
				if err := checkBoundary(i, "start", *r.start); err != nil {
					return "", err
				}
			}
			if r.end != nil {
				if err := checkBoundary(i, "end", *r.end); err != nil {
					return "", err
				}
			}
		}

		if r.start != nil && r.end != nil && compare(*r.start, *r.end) >= 0 {
			return "", fmt.Errorf("%w: range %d: start must be before end", ErrOrdering, i)
		}
		if prevEnd != nil && r.start != nil && compare(*prevEnd, *r.start) > 0 {
			return "", fmt.Errorf("%w: range %d: start must be after previous range's end", ErrOrdering, i)
		}
		prevEnd = r.end
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	for i, r := range ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		if r.appendToPrevious && i > 0 {
			b.WriteByte('+')
		}
		if r.start != nil {
			b.WriteString(render(*r.start))
		}
		b.WriteByte('-')
		if r.end != nil {
			b.WriteString(render(*r.end))
		}
	}
	return b.String(), nil
}
