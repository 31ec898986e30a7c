package timeline

import (
	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// Len returns the number of children of n.
func (n *Node) Len() int { return len(n.children) }

// Children returns the children of n in order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Child returns the child at index i.
func (n *Node) Child(i int) (*Node, error) {
	if err := n.checkIndex(i); err != nil {
		return nil, err
	}
	return n.children[i], nil
}

// IndexOf returns the position of child in n.
func (n *Node) IndexOf(child *Node) (int, error) {
	for i, c := range n.children {
		if c == child {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrNotAChild, "%s %q in %s %q", child.kind, child.name, n.kind, n.name)
}

// Append adds child after the last child of n.
func (n *Node) Append(child ...*Node) error {
	for _, c := range child {
		if err := n.Insert(len(n.children), c); err != nil {
			return err
		}
	}
	return nil
}

// Insert places child at index i, shifting later children along.
func (n *Node) Insert(i int, child *Node) error {
	if err := n.adoptable(child); err != nil {
		return err
	}
	if i < 0 || i > len(n.children) {
		return errors.Wrapf(ErrNotAChild, "insert index %d out of bounds [0, %d]", i, len(n.children))
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	return nil
}

// Replace swaps the child at index i for child and returns the old one,
// now detached.
func (n *Node) Replace(i int, child *Node) (*Node, error) {
	if err := n.checkIndex(i); err != nil {
		return nil, err
	}
	if err := n.adoptable(child); err != nil {
		return nil, err
	}
	old := n.children[i]
	old.detach()
	n.children[i] = child
	child.parent = n
	return old, nil
}

// Remove detaches and returns the child at index i.
func (n *Node) Remove(i int) (*Node, error) {
	if err := n.checkIndex(i); err != nil {
		return nil, err
	}
	old := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	old.detach()
	return old, nil
}

// Clear detaches every child of n.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.detach()
	}
	n.children = nil
}

func (n *Node) detach() {
	n.parent = nil
	n.gen++
}

func (n *Node) adoptable(child *Node) error {
	if !n.kind.IsComposition() {
		return errors.Wrapf(ErrNotAComposition, "%s %q", n.kind, n.name)
	}
	if child == nil {
		return errors.Wrap(ErrNotAChild, "nil child")
	}
	if child.parent != nil {
		return errors.Wrapf(ErrAlreadyParented, "%s %q belongs to %s %q", child.kind, child.name, child.parent.kind, child.parent.name)
	}
	if child == n || child.IsParentOf(n) {
		return errors.Wrapf(ErrCycle, "%s %q into %s %q", child.kind, child.name, n.kind, n.name)
	}
	return nil
}

func (n *Node) checkIndex(i int) error {
	if !n.kind.IsComposition() {
		return errors.Wrapf(ErrNotAComposition, "%s %q", n.kind, n.name)
	}
	if i < 0 || i >= len(n.children) {
		return errors.Wrapf(ErrNotAChild, "index %d out of bounds [0, %d)", i, len(n.children))
	}
	return nil
}

// RangeOfChild returns the untrimmed range of the child at index i in n's
// internal space. In a track children follow one another and transitions
// take no room of their own; in a stack every child starts at zero.
func (n *Node) RangeOfChild(i int) (timing.Range, error) {
	if err := n.checkIndex(i); err != nil {
		return timing.Range{}, err
	}
	child := n.children[i]
	dur, err := child.Duration()
	if err != nil {
		return timing.Range{}, err
	}
	if n.kind == KindStack {
		return timing.NewRange(timing.Zero(dur.Rate()), dur), nil
	}

	var start timing.Time
	for _, c := range n.children[:i] {
		if c.kind == KindTransition {
			continue
		}
		d, err := c.Duration()
		if err != nil {
			return timing.Range{}, err
		}
		start = plus(start, d)
	}
	if child.kind == KindTransition {
		start = plus(start, child.inOffset.Neg())
	}
	if start.IsZero() {
		start = timing.Zero(dur.Rate())
	}
	return timing.NewRange(start, dur), nil
}

// RangesOfChildren returns RangeOfChild for every child, in order.
func (n *Node) RangesOfChildren() ([]timing.Range, error) {
	if !n.kind.IsComposition() {
		return nil, errors.Wrapf(ErrNotAComposition, "%s %q", n.kind, n.name)
	}
	ranges := make([]timing.Range, 0, len(n.children))
	var end timing.Time
	for i, c := range n.children {
		dur, err := c.Duration()
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		start := end
		switch {
		case n.kind == KindStack:
			start = timing.Time{}
		case c.kind == KindTransition:
			start = plus(end, c.inOffset.Neg())
		default:
			end = plus(end, dur)
		}
		if start.IsZero() {
			start = timing.Zero(dur.Rate())
		}
		ranges = append(ranges, timing.NewRange(start, dur))
	}
	return ranges, nil
}

// TrimmedRangeOfChild returns RangeOfChild clipped to n's source range.
// A child wholly outside the source range is an error.
func (n *Node) TrimmedRangeOfChild(i int) (timing.Range, error) {
	r, err := n.RangeOfChild(i)
	if err != nil || n.sourceRange == nil {
		return r, err
	}
	sr := *n.sourceRange
	if r.Start.Cmp(sr.End()) >= 0 || r.End().Cmp(sr.Start) <= 0 {
		return timing.Range{}, errors.Wrapf(ErrNotAChild, "child %d at %v is outside trimmed range %v", i, r, sr)
	}
	start, end := timing.Max(r.Start, sr.Start), timing.Min(r.End(), sr.End())
	return timing.RangeFromStartEnd(start, end)
}

// HandlesOfChild returns how far the transitions on either side of child
// reach into it: the in offset of a transition just before it and the out
// offset of one just after. Both are zero in a stack.
func (n *Node) HandlesOfChild(child *Node) (head, tail timing.Time, err error) {
	i, err := n.IndexOf(child)
	if err != nil || n.kind != KindTrack {
		return head, tail, err
	}
	if i > 0 {
		if prev := n.children[i-1]; prev.kind == KindTransition {
			head = prev.inOffset
		}
	}
	if i+1 < len(n.children) {
		if next := n.children[i+1]; next.kind == KindTransition {
			tail = next.outOffset
		}
	}
	return head, tail, nil
}

// LocalToChildTransform returns the map from n's internal space into the
// internal space of child.
func (n *Node) LocalToChildTransform(child *Node) (timing.Transform, error) {
	if child.parent != n {
		return timing.Transform{}, errors.Wrapf(ErrNotAChild, "%s %q in %s %q", child.kind, child.name, n.kind, n.name)
	}
	x, err := child.LocalToParentTransform()
	if err != nil {
		return timing.Transform{}, err
	}
	return x.Inverse()
}
