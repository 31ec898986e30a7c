package timeline

import (
	"iter"

	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// Timeline is the root of an edit: a stack of tracks placed at a global
// start time.
type Timeline struct {
	Name            string
	Metadata        Metadata
	GlobalStartTime *timing.Time

	tracks *Node
}

// NewTimeline returns an empty timeline.
func NewTimeline(name string, globalStart *timing.Time) *Timeline {
	tl := &Timeline{Name: name, Metadata: Metadata{}, tracks: NewStack("tracks", nil)}
	if globalStart != nil {
		t := *globalStart
		tl.GlobalStartTime = &t
	}
	return tl
}

// Tracks returns the stack holding the timeline's tracks.
func (tl *Timeline) Tracks() *Node { return tl.tracks }

// AddTrack appends track, which must be a Track, to the top of the stack.
func (tl *Timeline) AddTrack(track *Node) error {
	if track == nil || track.kind != KindTrack {
		return errors.Wrapf(ErrUnsupportedOperation, "timeline %q only holds tracks", tl.Name)
	}
	return tl.tracks.Append(track)
}

// Duration returns the length of the longest track.
func (tl *Timeline) Duration() (timing.Time, error) {
	return tl.tracks.Duration()
}

// InternalSpace returns the internal space of the tracks stack.
func (tl *Timeline) InternalSpace() Space { return tl.tracks.InternalSpace() }

// GlobalSpace returns the space that starts at the timeline's global start
// time. Times in it are external times of the tracks stack shifted by that
// start.
func (tl *Timeline) GlobalSpace() Space {
	s := tl.tracks.space(SpaceGlobal)
	if tl.GlobalStartTime != nil {
		s.global = *tl.GlobalStartTime
	}
	return s
}

// EachChild walks everything in the timeline.
func (tl *Timeline) EachChild(f Filter) iter.Seq2[*Node, error] {
	return tl.tracks.EachChild(f)
}

// EachClip walks the clips of the timeline overlapping r, or all of them
// when r is nil.
func (tl *Timeline) EachClip(r *timing.Range) iter.Seq2[*Node, error] {
	return tl.tracks.EachClip(r)
}

// VideoTracks returns the video tracks, bottom first.
func (tl *Timeline) VideoTracks() []*Node { return tl.tracksOf(TrackVideo) }

// AudioTracks returns the audio tracks, bottom first.
func (tl *Timeline) AudioTracks() []*Node { return tl.tracksOf(TrackAudio) }

func (tl *Timeline) tracksOf(kind TrackKind) []*Node {
	var out []*Node
	for _, t := range tl.tracks.children {
		if t.kind == KindTrack && t.trackKind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy of tl.
func (tl *Timeline) Clone() *Timeline {
	c := &Timeline{Name: tl.Name, Metadata: tl.Metadata.Copy(), tracks: tl.tracks.Clone()}
	if tl.GlobalStartTime != nil {
		t := *tl.GlobalStartTime
		c.GlobalStartTime = &t
	}
	return c
}
