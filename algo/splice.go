package algo

import (
	"github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/timeline/timeline"
	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// SourceSplice returns the media ranges the visible items of track play,
// in seconds and in track order. This is the cut list a transcoder needs to
// clip its input to the edit.
func SourceSplice(track *timeline.Node) (timecode.Splice, error) {
	return splice(track, func(_ int, item *timeline.Node) (timing.Range, error) {
		return item.TrimmedRange()
	})
}

// TrackSplice returns where the visible items of track sit in it, in
// seconds.
func TrackSplice(track *timeline.Node) (timecode.Splice, error) {
	return splice(track, func(i int, _ *timeline.Node) (timing.Range, error) {
		return track.RangeOfChild(i)
	})
}

func splice(track *timeline.Node, rangeOf func(int, *timeline.Node) (timing.Range, error)) (timecode.Splice, error) {
	if track.Kind() != timeline.KindTrack {
		return nil, errors.Wrapf(timeline.ErrUnsupportedOperation, "splice of %s %q", track.Kind(), track.Name())
	}
	s := timecode.Splice{}
	for i, item := range track.Children() {
		if !item.Visible() {
			continue
		}
		r, err := rangeOf(i, item)
		if err != nil {
			return nil, errors.Wrapf(err, "splice of track %q", track.Name())
		}
		s = append(s, r.Seconds())
	}
	return s, nil
}
