package algo

import (
	"github.com/cbsinteractive/timeline/timeline"
	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// ErrCannotTrimTransition is returned when a trim edge falls inside a transition
var ErrCannotTrimTransition = errors.New("cannot trim in the middle of a transition")

// TrimmedToRange returns a copy of track holding only what lies inside r,
// given in the track's internal space. Children across an edge of r are
// shortened; children outside it are dropped.
func TrimmedToRange(track *timeline.Node, r timing.Range) (*timeline.Node, error) {
	if track.Kind() != timeline.KindTrack {
		return nil, errors.Wrapf(timeline.ErrUnsupportedOperation, "trimming %s %q", track.Kind(), track.Name())
	}
	out := track.Clone()
	ranges, err := out.RangesOfChildren()
	if err != nil {
		return nil, errors.Wrapf(err, "trimming track %q", track.Name())
	}

	for i := len(ranges) - 1; i >= 0; i-- {
		cr := ranges[i]
		child, err := out.Child(i)
		if err != nil {
			return nil, err
		}
		switch {
		case !r.Overlaps(cr):
			if _, err := out.Remove(i); err != nil {
				return nil, err
			}
		case r.ContainsRange(cr):
		case child.Kind() == timeline.KindTransition:
			return nil, errors.Wrapf(ErrCannotTrimTransition, "%q at %v, trimming to %v", child.Name(), cr, r)
		default:
			sr, err := child.TrimmedRange()
			if err != nil {
				return nil, err
			}
			if cut := r.Start.Sub(cr.Start); cut.Sign() > 0 {
				sr.Start = sr.Start.Add(cut)
				sr.Duration = sr.Duration.Sub(cut)
			}
			if cut := cr.End().Sub(r.End()); cut.Sign() > 0 {
				sr.Duration = sr.Duration.Sub(cut)
			}
			if err := child.SetSourceRange(&sr); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
