package timestamp

// TimeRange marks one segment of a split along the output timeline.
// A nil Start means "from the beginning of the file"; a nil End means "to the
// end of the file". AppendToPrevious joins this segment to the previous
// output file instead of starting a new one.
type TimeRange struct {
	Start            *Timestamp
	End              *Timestamp
	AppendToPrevious bool
}

// NewTimeRange builds a bounded or half-open time range. Pass nil for an
// open boundary.
func NewTimeRange(start, end *Timestamp) TimeRange {
	return TimeRange{Start: start, End: end}
}

// FrameRange is the frame-numbered counterpart of TimeRange. Frame numbering
// is 1-based and has no sub-frame component. Nil boundaries are open.
type FrameRange struct {
	Start            *int64
	End              *int64
	AppendToPrevious bool
}

// NewFrameRange builds a bounded or half-open frame range. Pass nil for an
// open boundary.
func NewFrameRange(start, end *int64) FrameRange {
	return FrameRange{Start: start, End: end}
}

// Ptr returns a pointer to ts, for building range boundaries inline.
func Ptr(ts Timestamp) *Timestamp { return &ts }

// FramePtr returns a pointer to frame, for building range boundaries inline.
func FramePtr(frame int64) *int64 { return &frame }
