package timeline

import (
	"math/big"

	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// AvailableRange returns the range of material n could show before
// trimming: the media range of a clip, the extent of a gap, or the
// children of a composition laid out in it.
func (n *Node) AvailableRange() (timing.Range, error) {
	switch n.kind {
	case KindClip:
		if n.media == nil {
			return timing.Range{}, errors.Wrapf(ErrUnsupportedOperation, "clip %q has no media reference", n.name)
		}
		if n.media.AvailableRange == nil {
			return timing.Range{}, errors.Wrapf(ErrUnsupportedOperation, "clip %q: media has no available range", n.name)
		}
		return *n.media.AvailableRange, nil
	case KindGap:
		if n.sourceRange == nil {
			return timing.Range{}, nil
		}
		d := n.sourceRange.Duration
		return timing.NewRange(timing.Zero(d.Rate()), d), nil
	case KindTrack:
		return n.trackAvailableRange()
	case KindStack:
		return n.stackAvailableRange()
	}
	return timing.Range{}, errors.Wrapf(ErrUnsupportedOperation, "available range of %s %q", n.kind, n.name)
}

func (n *Node) trackAvailableRange() (timing.Range, error) {
	var dur timing.Time
	for _, c := range n.children {
		if c.kind == KindTransition {
			continue
		}
		d, err := c.Duration()
		if err != nil {
			return timing.Range{}, errors.Wrapf(err, "track %q", n.name)
		}
		dur = plus(dur, d)
	}
	if len(n.children) > 0 {
		if first := n.children[0]; first.kind == KindTransition {
			dur = plus(dur, first.inOffset)
		}
		if last := n.children[len(n.children)-1]; last.kind == KindTransition {
			dur = plus(dur, last.outOffset)
		}
	}
	return timing.NewRange(timing.Zero(dur.Rate()), dur), nil
}

func (n *Node) stackAvailableRange() (timing.Range, error) {
	var dur timing.Time
	for _, c := range n.children {
		d, err := c.Duration()
		if err != nil {
			return timing.Range{}, errors.Wrapf(err, "stack %q", n.name)
		}
		if dur.IsZero() || d.Cmp(dur) > 0 {
			dur = d
		}
	}
	return timing.NewRange(timing.Zero(dur.Rate()), dur), nil
}

// TrimmedRange returns the source range if one is set, otherwise the
// available range, in n's internal space.
func (n *Node) TrimmedRange() (timing.Range, error) {
	if !n.kind.IsItem() {
		return timing.Range{}, errors.Wrapf(ErrUnsupportedOperation, "trimmed range of %s %q", n.kind, n.name)
	}
	if n.sourceRange != nil {
		return *n.sourceRange, nil
	}
	return n.AvailableRange()
}

// TrimmedRangeIn returns the trimmed range as seen from space, which must
// be one of n's own. The external space sees it as is; the spaces before
// effects see it through the inverse of the effects transform.
func (n *Node) TrimmedRangeIn(space Space) (timing.Range, error) {
	if err := space.valid(); err != nil {
		return timing.Range{}, err
	}
	if space.owner != n || space.kind == SpaceGlobal {
		return timing.Range{}, errors.Wrapf(ErrInvalidSpace, "%v is not a space of %s %q", space, n.kind, n.name)
	}
	r, err := n.TrimmedRange()
	if err != nil || space.kind == SpaceExternal {
		return r, err
	}
	x := n.EffectsTimeTransform()
	if x.IsIdentity() {
		return r, nil
	}
	inv, err := x.Inverse()
	if err != nil {
		return timing.Range{}, err
	}
	return inv.ApplyRange(r), nil
}

// EffectsTimeTransform returns the transform from before n's effects to
// after them. Only the last invertible TimeScaler counts; earlier speed
// changes are ignored.
func (n *Node) EffectsTimeTransform() timing.Transform {
	if s := n.effectScale(); s != nil {
		return timing.Scale(s)
	}
	return timing.Identity()
}

// effectScale returns the reciprocal time scalar of the last invertible
// TimeScaler on n, or nil.
func (n *Node) effectScale() *big.Rat {
	for i := len(n.effects) - 1; i >= 0; i-- {
		ts, ok := n.effects[i].(TimeScaler)
		if !ok {
			continue
		}
		if s, ok := ts.TimeScalar(); ok {
			return new(big.Rat).Inv(s)
		}
	}
	return nil
}

// VisibleRange returns the trimmed range widened by the handles the
// transitions next to n reveal.
func (n *Node) VisibleRange() (timing.Range, error) {
	r, err := n.TrimmedRange()
	if err != nil || n.parent == nil {
		return r, err
	}
	head, tail, err := n.parent.HandlesOfChild(n)
	if err != nil {
		return timing.Range{}, err
	}
	if !head.IsZero() {
		r.Start = r.Start.Sub(head)
		r.Duration = r.Duration.Add(head)
	}
	if !tail.IsZero() {
		r.Duration = r.Duration.Add(tail)
	}
	return r, nil
}

// RangeInParent returns n's untrimmed range in its parent's internal space.
func (n *Node) RangeInParent() (timing.Range, error) {
	i, err := n.indexInParent()
	if err != nil {
		return timing.Range{}, err
	}
	return n.parent.RangeOfChild(i)
}

// TrimmedRangeInParent returns n's range in its parent, clipped to the
// parent's source range.
func (n *Node) TrimmedRangeInParent() (timing.Range, error) {
	i, err := n.indexInParent()
	if err != nil {
		return timing.Range{}, err
	}
	return n.parent.TrimmedRangeOfChild(i)
}

func (n *Node) indexInParent() (int, error) {
	if n.parent == nil {
		return 0, errors.Wrapf(ErrNotAChild, "%s %q has no parent", n.kind, n.name)
	}
	return n.parent.IndexOf(n)
}

// LocalToParentTransform returns the map from n's internal space to its
// parent's: drop the trim, apply the effects, then move to where n sits in
// the parent. Without a time-scaling effect the offset is the range in
// parent start minus the trimmed start; a warp scales the trimmed start
// too, so the trimmed start always lands on n's start in the parent.
func (n *Node) LocalToParentTransform() (timing.Transform, error) {
	if n.parent == nil {
		return timing.Transform{}, errors.Wrapf(ErrDetachedItem, "%s %q", n.kind, n.name)
	}
	if !n.kind.IsItem() {
		return timing.Transform{}, errors.Wrapf(ErrUnsupportedOperation, "transform of %s %q", n.kind, n.name)
	}
	rip, err := n.RangeInParent()
	if err != nil {
		return timing.Transform{}, err
	}
	tr, err := n.TrimmedRange()
	if err != nil {
		return timing.Transform{}, err
	}
	return timing.Translate(rip.Start).
		Mul(n.EffectsTimeTransform()).
		Mul(timing.Translate(tr.Start.Neg())), nil
}

// TransformedTime maps t from n's internal space into to's. A nil to
// returns t as is.
func (n *Node) TransformedTime(t timing.Time, to *Node) (timing.Time, error) {
	if to == nil {
		return t, nil
	}
	return TransformTime(t, n.InternalSpace(), to.InternalSpace())
}

// TransformedTimeRange maps the start of r from n's internal space into
// to's and keeps its duration.
func (n *Node) TransformedTimeRange(r timing.Range, to *Node) (timing.Range, error) {
	start, err := n.TransformedTime(r.Start, to)
	if err != nil {
		return timing.Range{}, err
	}
	return timing.NewRange(start, r.Duration), nil
}
