package timeline

import (
	"iter"
	"slices"

	"github.com/cbsinteractive/timeline/timing"
)

// Filter narrows a traversal. Zero fields match everything.
type Filter struct {
	// Range, in the internal space of the node traversed, drops children
	// that don't overlap it along with everything below them
	Range *timing.Range
	// Kinds limits what is yielded; descent is not affected
	Kinds []Kind
	// Match, when set, must also accept a node for it to be yielded
	Match func(*Node) bool
	// Shallow stops the traversal at the direct children
	Shallow bool
}

func (f Filter) yields(n *Node) bool {
	if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, n.kind) {
		return false
	}
	return f.Match == nil || f.Match(n)
}

// EachChild walks the descendants of n depth first, parents before their
// children. An error computing a range ends the walk after it is yielded.
func (n *Node) EachChild(f Filter) iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		n.eachChild(f, f.Range, yield)
	}
}

func (n *Node) eachChild(f Filter, search *timing.Range, yield func(*Node, error) bool) bool {
	for i, c := range n.children {
		var sub *timing.Range
		if search != nil {
			r, err := n.RangeOfChild(i)
			if err != nil {
				yield(nil, err)
				return false
			}
			if !r.Overlaps(*search) {
				continue
			}
			if c.kind.IsComposition() {
				x, err := n.LocalToChildTransform(c)
				if err != nil {
					yield(nil, err)
					return false
				}
				cr := x.ApplyRange(*search)
				sub = &cr
			}
		}
		if f.yields(c) && !yield(c, nil) {
			return false
		}
		if f.Shallow || !c.kind.IsComposition() {
			continue
		}
		if !c.eachChild(f, sub, yield) {
			return false
		}
	}
	return true
}

// EachClip walks the clips below n.
func (n *Node) EachClip(r *timing.Range) iter.Seq2[*Node, error] {
	return n.EachChild(Filter{Range: r, Kinds: []Kind{KindClip}})
}
