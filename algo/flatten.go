// Package algo holds algorithms over timeline trees: flattening a stack of
// tracks into one, trimming a track to a range, filtering copies of a tree
// and exporting tracks as splices.
package algo

import (
	"io"

	"github.com/cbsinteractive/timeline/config"
	"github.com/cbsinteractive/timeline/timeline"
	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMissingFlattenMapping is returned in strict mode for an invisible item
// whose place in the flattened track is unknown
var ErrMissingFlattenMapping = errors.New("no flattened range for item")

// Skip records an invisible item the flattener could not place and so
// left out, along with whatever was under it.
type Skip struct {
	Track int
	Index int
	Name  string
}

// Result is the outcome of a flatten.
type Result struct {
	Track   *timeline.Node
	Skipped []Skip
}

// Flattener collapses stacked tracks into one, showing lower tracks
// through the gaps of upper ones.
type Flattener struct {
	cfg    config.Flatten
	logger logrus.FieldLogger
}

// NewFlattener returns a Flattener. A nil cfg uses the defaults and a nil
// logger discards everything.
func NewFlattener(cfg *config.Flatten, logger logrus.FieldLogger) *Flattener {
	f := &Flattener{cfg: *config.Default().Flatten, logger: logger}
	if cfg != nil {
		f.cfg = *cfg
	}
	if f.logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		f.logger = l
	}
	return f
}

// Flatten flattens tracks with the default configuration.
func Flatten(tracks []*timeline.Node) (*Result, error) {
	return NewFlattener(nil, nil).Flatten(tracks)
}

// FlattenStack flattens the tracks of stack, bottom first.
func (f *Flattener) FlattenStack(stack *timeline.Node) (*Result, error) {
	if stack == nil {
		return nil, errors.Wrap(timeline.ErrUnsupportedOperation, "flattening nil stack")
	}
	if stack.Kind() != timeline.KindStack {
		return nil, errors.Wrapf(timeline.ErrUnsupportedOperation, "flattening %s %q", stack.Kind(), stack.Name())
	}
	return f.Flatten(stack.Children())
}

// frame is a track being walked: the top track as given, or a copy of a
// lower track trimmed to the window of an invisible item above it.
type frame struct {
	index int
	items []*timeline.Node
	next  int
	// trim is the window, in flattened time, the copy was cut to
	trim *timing.Range
}

// Flatten returns one track made of copies of what is visible from the
// top of tracks, the last of which is the top. Items on the bottom track
// and transitions are always taken.
func (f *Flattener) Flatten(tracks []*timeline.Node) (*Result, error) {
	for i, t := range tracks {
		if t == nil {
			return nil, errors.Wrapf(timeline.ErrUnsupportedOperation, "flattening nil track at %d", i)
		}
		if t.Kind() != timeline.KindTrack {
			return nil, errors.Wrapf(timeline.ErrUnsupportedOperation, "flattening %s %q at %d", t.Kind(), t.Name(), i)
		}
	}
	kind := timeline.TrackVideo
	if len(tracks) > 0 {
		kind = tracks[len(tracks)-1].TrackKind()
	}
	res := &Result{Track: timeline.NewTrack(f.cfg.TrackName, nil, kind)}
	if len(tracks) == 0 {
		return res, nil
	}

	ranges := map[*timeline.Node]timing.Range{}
	for i, t := range tracks {
		f.layout(i, t, ranges)
	}

	top := len(tracks) - 1
	work := []*frame{{index: top, items: tracks[top].Children()}}
	for len(work) > 0 {
		fr := work[len(work)-1]
		if fr.next == len(fr.items) {
			work = work[:len(work)-1]
			continue
		}
		i, item := fr.next, fr.items[fr.next]
		fr.next++

		if item.Visible() || fr.index == 0 || item.Kind() == timeline.KindTransition {
			if err := res.Track.Append(item.Clone()); err != nil {
				return nil, err
			}
			continue
		}

		window, ok := ranges[item]
		if !ok {
			skip := Skip{Track: fr.index, Index: i, Name: item.Name()}
			if f.cfg.Strict {
				return nil, errors.Wrapf(ErrMissingFlattenMapping, "track %d item %d %q", skip.Track, skip.Index, skip.Name)
			}
			f.logger.WithFields(logrus.Fields{
				"track": skip.Track,
				"index": skip.Index,
				"name":  skip.Name,
			}).Warn("no flattened range for item, skipping")
			res.Skipped = append(res.Skipped, skip)
			continue
		}
		if fr.trim != nil {
			window.Start = window.Start.Add(fr.trim.Start)
		}

		lower, err := TrimmedToRange(tracks[fr.index-1], window)
		if err != nil {
			return nil, errors.Wrapf(err, "flattening track %d", fr.index-1)
		}
		f.layout(fr.index-1, lower, ranges)
		work = append(work, &frame{index: fr.index - 1, items: lower.Children(), trim: &window})
	}
	return res, nil
}

// layout records where each non-transition child of track would sit if
// the children were laid end to end from zero. A child whose duration
// can't be computed leaves it and everything after it unplaced.
func (f *Flattener) layout(index int, track *timeline.Node, ranges map[*timeline.Node]timing.Range) {
	var end *timing.Time
	for i, item := range track.Children() {
		if item.Kind() == timeline.KindTransition {
			continue
		}
		d, err := item.Duration()
		if err != nil {
			f.logger.WithFields(logrus.Fields{
				"track": index,
				"index": i,
				"name":  item.Name(),
			}).WithError(err).Debug("cannot lay out rest of track")
			return
		}
		if end == nil {
			z := timing.Zero(d.Rate())
			end = &z
		}
		ranges[item] = timing.NewRange(*end, d)
		next := end.Add(d)
		end = &next
	}
}
