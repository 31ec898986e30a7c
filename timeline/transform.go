package timeline

import (
	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// TransformTime maps t from one space to another. The walk goes up from
// from's owner to the closest common ancestor and down to to's owner,
// mapping through each item's LocalToParentTransform and then through
// the inverses on the way down.
func TransformTime(t timing.Time, from, to Space) (timing.Time, error) {
	if err := from.valid(); err != nil {
		return timing.Time{}, err
	}
	if err := to.valid(); err != nil {
		return timing.Time{}, err
	}
	if from.Equal(to) {
		return t, nil
	}
	x, err := spaceTransform(from, to)
	if err != nil {
		return timing.Time{}, err
	}
	return x.Apply(t), nil
}

// TransformRange maps r from one space to another. The duration is scaled
// by any change of speed along the way.
func TransformRange(r timing.Range, from, to Space) (timing.Range, error) {
	if err := from.valid(); err != nil {
		return timing.Range{}, err
	}
	if err := to.valid(); err != nil {
		return timing.Range{}, err
	}
	if from.Equal(to) {
		return r, nil
	}
	x, err := spaceTransform(from, to)
	if err != nil {
		return timing.Range{}, err
	}
	return x.ApplyRange(r), nil
}

func spaceTransform(from, to Space) (timing.Transform, error) {
	lca := commonAncestor(from.owner, to.owner)
	if lca == nil {
		return timing.Transform{}, errors.Wrapf(ErrNotAChild, "%v and %v share no ancestor", from, to)
	}

	x, err := from.toLocal()
	if err != nil {
		return timing.Transform{}, err
	}
	for n := from.owner; n != lca; n = n.parent {
		up, err := n.LocalToParentTransform()
		if err != nil {
			return timing.Transform{}, errors.Wrapf(err, "ascending from %v", from)
		}
		x = up.Mul(x)
	}

	var down []*Node
	for n := to.owner; n != lca; n = n.parent {
		down = append(down, n)
	}
	for i := len(down) - 1; i >= 0; i-- {
		up, err := down[i].LocalToParentTransform()
		if err != nil {
			return timing.Transform{}, errors.Wrapf(err, "descending to %v", to)
		}
		inv, err := up.Inverse()
		if err != nil {
			return timing.Transform{}, errors.Wrapf(err, "descending to %v", to)
		}
		x = inv.Mul(x)
	}

	local, err := to.toLocal()
	if err != nil {
		return timing.Transform{}, err
	}
	inv, err := local.Inverse()
	if err != nil {
		return timing.Transform{}, err
	}
	return inv.Mul(x), nil
}

// commonAncestor returns the closest node that is a or b or an ancestor of
// both, or nil when they are in different trees.
func commonAncestor(a, b *Node) *Node {
	seen := map[*Node]bool{}
	for n := a; n != nil; n = n.parent {
		seen[n] = true
	}
	for n := b; n != nil; n = n.parent {
		if seen[n] {
			return n
		}
	}
	return nil
}
