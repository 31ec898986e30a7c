package algo

import (
	"github.com/cbsinteractive/timeline/timeline"
	"github.com/pkg/errors"
)

// ReduceFunc decides what replaces item in the copy. prev and next are
// item's neighbors before anything was replaced, or nil at either end.
// Returning nil drops item and everything under it.
type ReduceFunc func(prev, item, next *timeline.Node) *timeline.Node

// FilteredItems returns a deep copy of root in which every descendant is
// replaced by fn(descendant). root keeps its own name and metadata.
func FilteredItems(root *timeline.Node, fn func(*timeline.Node) *timeline.Node) (*timeline.Node, error) {
	return ReducedItems(root, func(_, item, _ *timeline.Node) *timeline.Node { return fn(item) })
}

// ReducedItems is FilteredItems with the item's neighbors passed along.
func ReducedItems(root *timeline.Node, fn ReduceFunc) (*timeline.Node, error) {
	out := root.Clone()
	if err := reduce(out, fn); err != nil {
		return nil, err
	}
	return out, nil
}

// FilteredTimeline applies FilteredItems to the tracks of a copy of tl.
func FilteredTimeline(tl *timeline.Timeline, fn func(*timeline.Node) *timeline.Node) (*timeline.Timeline, error) {
	out := tl.Clone()
	if err := reduce(out.Tracks(), func(_, item, _ *timeline.Node) *timeline.Node { return fn(item) }); err != nil {
		return nil, err
	}
	return out, nil
}

func reduce(parent *timeline.Node, fn ReduceFunc) error {
	if !parent.Kind().IsComposition() {
		return nil
	}
	kids := parent.Children()
	results := make([]*timeline.Node, len(kids))
	for i, k := range kids {
		var prev, next *timeline.Node
		if i > 0 {
			prev = kids[i-1]
		}
		if i+1 < len(kids) {
			next = kids[i+1]
		}
		results[i] = fn(prev, k, next)
	}

	parent.Clear()
	for i, r := range results {
		if r == nil {
			continue
		}
		if err := parent.Append(r); err != nil {
			return errors.Wrapf(err, "replacing child %d of %q", i, parent.Name())
		}
		if err := reduce(r, fn); err != nil {
			return err
		}
	}
	return nil
}
