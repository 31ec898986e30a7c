package timing

import (
	"fmt"

	"github.com/pkg/errors"
)

// Range is an interval starting at Start and lasting Duration. The end
// is exclusive: a Range contains Start but not End.
type Range struct {
	Start    Time
	Duration Time
}

// NewRange returns the range [start, start+dur).
func NewRange(start, dur Time) Range {
	return Range{Start: start, Duration: dur}
}

// RangeFromStartEnd returns the range [start, end). The duration is
// expressed at start's rate.
func RangeFromStartEnd(start, end Time) (Range, error) {
	if end.Less(start) {
		return Range{}, errors.Wrapf(ErrNegativeDuration, "range %v-%v", start, end)
	}
	return Range{Start: start, Duration: end.Sub(start)}, nil
}

// Validate returns ErrNegativeDuration when r has a negative duration
func (r Range) Validate() error {
	if r.Duration.Sign() < 0 {
		return errors.Wrapf(ErrNegativeDuration, "range %v", r)
	}
	return nil
}

// End returns the first instant after r.
func (r Range) End() Time {
	return r.Start.Add(r.Duration)
}

// Contains reports whether t is inside r.
func (r Range) Contains(t Time) bool {
	return r.Start.Cmp(t) <= 0 && t.Less(r.End())
}

// ContainsRange reports whether o lies entirely inside r.
func (r Range) ContainsRange(o Range) bool {
	return r.Start.Cmp(o.Start) <= 0 && o.End().Cmp(r.End()) <= 0
}

// Overlaps reports whether r and o share any instant.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Less(o.End()) && o.Start.Less(r.End())
}

// Extend returns the smallest range that contains r and o
func (r Range) Extend(o Range) Range {
	start := Min(r.Start, o.Start)
	end := Max(r.End(), o.End())
	return Range{Start: start, Duration: end.Sub(start)}
}

// Clamp returns t limited to [Start, End].
func (r Range) Clamp(t Time) Time {
	return Min(Max(t, r.Start), r.End())
}

// Equal reports whether r and o cover the same interval.
func (r Range) Equal(o Range) bool {
	return r.Start.Equal(o.Start) && r.Duration.Equal(o.Duration)
}

// Rescale expresses both ends of r at rate of t.
func (r Range) RescaleTo(t Time) Range {
	return Range{Start: r.Start.RescaleTo(t), Duration: r.Duration.RescaleTo(t)}
}

func (r Range) String() string {
	return fmt.Sprintf("Range(%v, %v)", r.Start, r.Duration)
}
