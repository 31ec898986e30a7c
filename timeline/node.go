// Package timeline models an editorial timeline as a tree of Nodes.
//
// Every node is one of a fixed set of kinds: leaves (Item, Clip, Gap,
// Transition) and compositions (Track, Stack). A Track lays its children
// end to end; a Stack layers them, later children over earlier ones.
// Compositions own their children; a child keeps a non-owning pointer to
// the composition holding it.
//
// The tree is not synchronized. Callers must not mutate it while a query,
// transform or traversal over it is running.
package timeline

import (
	"fmt"

	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// Kind is the variant of a Node
type Kind int

const (
	KindItem Kind = iota
	KindClip
	KindGap
	KindTransition
	KindTrack
	KindStack
)

var kindNames = [...]string{
	KindItem:       "Item",
	KindClip:       "Clip",
	KindGap:        "Gap",
	KindTransition: "Transition",
	KindTrack:      "Track",
	KindStack:      "Stack",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsItem reports whether nodes of kind k have a temporal extent of their
// own. Everything but a Transition does.
func (k Kind) IsItem() bool { return k != KindTransition }

// IsComposition reports whether nodes of kind k hold children.
func (k Kind) IsComposition() bool { return k == KindTrack || k == KindStack }

// TrackKind tags what a track carries
type TrackKind string

const (
	TrackVideo = TrackKind("Video")
	TrackAudio = TrackKind("Audio")
)

// Transition types
const (
	TransitionDissolve = "SMPTE_Dissolve"
	TransitionCustom   = "custom"
)

// Node is one composable in a timeline tree.
type Node struct {
	kind     Kind
	name     string
	metadata Metadata

	parent *Node
	// gen changes whenever the node is detached, invalidating
	// the coordinate spaces handed out before
	gen uint64

	sourceRange *timing.Range
	effects     []Effect
	markers     []*Marker

	media     *MediaReference
	trackKind TrackKind

	transitionType      string
	inOffset, outOffset timing.Time

	children []*Node
}

func newNode(kind Kind, name string, sourceRange *timing.Range) *Node {
	n := &Node{kind: kind, name: name, metadata: Metadata{}}
	if sourceRange != nil {
		r := *sourceRange
		n.sourceRange = &r
	}
	return n
}

// NewItem returns a bare item. It has no available range of its own, so it
// is only useful with an explicit source range.
func NewItem(name string, sourceRange *timing.Range) *Node {
	return newNode(KindItem, name, sourceRange)
}

// NewClip returns a clip of media. A nil source range uses the whole
// available range of the media.
func NewClip(name string, media *MediaReference, sourceRange *timing.Range) *Node {
	n := newNode(KindClip, name, sourceRange)
	n.media = media.Copy()
	return n
}

// NewGap returns an invisible filler. Either sourceRange or duration may be
// given, not both; a duration d is shorthand for the range [0, d).
func NewGap(name string, sourceRange *timing.Range, duration *timing.Time) (*Node, error) {
	if sourceRange != nil && duration != nil {
		return nil, errors.Wrapf(ErrConstructionConflict, "gap %q: source range and duration", name)
	}
	if duration != nil {
		r := timing.NewRange(timing.Zero(duration.Rate()), *duration)
		sourceRange = &r
	}
	if sourceRange != nil {
		if err := sourceRange.Validate(); err != nil {
			return nil, errors.Wrapf(err, "gap %q", name)
		}
	}
	return newNode(KindGap, name, sourceRange), nil
}

// GapOf returns an unnamed gap lasting d.
func GapOf(d timing.Time) *Node {
	r := timing.NewRange(timing.Zero(d.Rate()), d)
	return newNode(KindGap, "", &r)
}

// NewTransition returns a transition reaching in before the cut and out after it.
func NewTransition(name, transitionType string, in, out timing.Time) *Node {
	n := newNode(KindTransition, name, nil)
	n.transitionType = transitionType
	n.inOffset, n.outOffset = in, out
	return n
}

// NewTrack returns an empty sequential composition.
func NewTrack(name string, sourceRange *timing.Range, kind TrackKind) *Node {
	n := newNode(KindTrack, name, sourceRange)
	n.trackKind = kind
	return n
}

// NewStack returns an empty layered composition.
func NewStack(name string, sourceRange *timing.Range) *Node {
	return newNode(KindStack, name, sourceRange)
}

func (n *Node) Kind() Kind       { return n.kind }
func (n *Node) Name() string     { return n.name }
func (n *Node) SetName(s string) { n.name = s }

// Metadata returns the node's metadata. The map is live: changes to it
// are changes to the node.
func (n *Node) Metadata() Metadata { return n.metadata }

func (n *Node) SetMetadata(md Metadata) {
	if md == nil {
		md = Metadata{}
	}
	n.metadata = md
}

// Parent returns the composition holding n, or nil.
func (n *Node) Parent() *Node { return n.parent }

// IsParentOf reports whether n is an ancestor of other.
func (n *Node) IsParentOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Root returns the top of n's tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Visible reports whether n shows anything. Gaps and transitions don't.
func (n *Node) Visible() bool {
	switch n.kind {
	case KindGap, KindTransition:
		return false
	}
	return true
}

// Overlapping reports whether n overlaps its neighbors instead of taking
// up room of its own. Only transitions do.
func (n *Node) Overlapping() bool { return n.kind == KindTransition }

// Duration returns the length of n in its parent: the trimmed duration of
// an item, or in+out for a transition.
func (n *Node) Duration() (timing.Time, error) {
	if n.kind == KindTransition {
		return plus(n.inOffset, n.outOffset), nil
	}
	r, err := n.TrimmedRange()
	if err != nil {
		return timing.Time{}, err
	}
	return r.Duration, nil
}

// SourceRange returns a copy of the explicit trim window, or nil.
func (n *Node) SourceRange() *timing.Range {
	if n.sourceRange == nil {
		return nil
	}
	r := *n.sourceRange
	return &r
}

// SetSourceRange sets or, with nil, clears the explicit trim window.
func (n *Node) SetSourceRange(r *timing.Range) error {
	if !n.kind.IsItem() {
		return errors.Wrapf(ErrUnsupportedOperation, "%s has no source range", n.kind)
	}
	if r == nil {
		n.sourceRange = nil
		return nil
	}
	if err := r.Validate(); err != nil {
		return err
	}
	c := *r
	n.sourceRange = &c
	return nil
}

// Effects returns the node's effects in application order.
func (n *Node) Effects() []Effect {
	return append([]Effect(nil), n.effects...)
}

// AddEffect appends e to the node's effects.
func (n *Node) AddEffect(e Effect) error {
	if !n.kind.IsItem() {
		return errors.Wrapf(ErrUnsupportedOperation, "%s has no effects", n.kind)
	}
	n.effects = append(n.effects, e)
	return nil
}

// Markers returns the node's markers.
func (n *Node) Markers() []*Marker {
	return append([]*Marker(nil), n.markers...)
}

// AddMarker appends m to the node's markers.
func (n *Node) AddMarker(m *Marker) error {
	if !n.kind.IsItem() {
		return errors.Wrapf(ErrUnsupportedOperation, "%s has no markers", n.kind)
	}
	n.markers = append(n.markers, m)
	return nil
}

// MediaReference returns the media of a clip, or nil.
func (n *Node) MediaReference() *MediaReference { return n.media }

// SetMediaReference replaces the media of a clip.
func (n *Node) SetMediaReference(m *MediaReference) error {
	if n.kind != KindClip {
		return errors.Wrapf(ErrUnsupportedOperation, "%s has no media reference", n.kind)
	}
	n.media = m.Copy()
	return nil
}

func (n *Node) TrackKind() TrackKind       { return n.trackKind }
func (n *Node) TransitionType() string     { return n.transitionType }
func (n *Node) InOffset() timing.Time      { return n.inOffset }
func (n *Node) OutOffset() timing.Time     { return n.outOffset }
func (n *Node) SetInOffset(t timing.Time)  { n.inOffset = t }
func (n *Node) SetOutOffset(t timing.Time) { n.outOffset = t }

// Clone returns a deep copy of the subtree rooted at n. The copy has
// no parent.
func (n *Node) Clone() *Node {
	c := &Node{
		kind:           n.kind,
		name:           n.name,
		metadata:       n.metadata.Copy(),
		sourceRange:    n.SourceRange(),
		media:          n.media.Copy(),
		trackKind:      n.trackKind,
		transitionType: n.transitionType,
		inOffset:       n.inOffset,
		outOffset:      n.outOffset,
	}
	for _, e := range n.effects {
		c.effects = append(c.effects, e.Copy())
	}
	for _, m := range n.markers {
		c.markers = append(c.markers, m.Copy())
	}
	if n.children != nil {
		c.children = make([]*Node, 0, len(n.children))
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func (n *Node) String() string {
	sr := "nil"
	if n.sourceRange != nil {
		sr = n.sourceRange.String()
	}
	switch {
	case n.kind == KindTransition:
		return fmt.Sprintf("Transition(%q, %s, in=%v, out=%v)", n.name, n.transitionType, n.inOffset, n.outOffset)
	case n.kind.IsComposition():
		return fmt.Sprintf("%s(%q, %d children, %s)", n.kind, n.name, len(n.children), sr)
	}
	return fmt.Sprintf("%s(%q, %s)", n.kind, n.name, sr)
}

// plus adds two times, keeping the rate of whichever is nonzero.
func plus(a, b timing.Time) timing.Time {
	if a.IsZero() {
		return b.Add(a)
	}
	return a.Add(b)
}
