package timeline

import "github.com/pkg/errors"

var (
	// ErrUnsupportedOperation is returned when a query has no implementation for
	// the node it was called on, such as the available range of a bare Item
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidSpace is returned for a coordinate space that isn't owned by
	// the receiving item, is of the wrong kind, or whose owner was detached
	ErrInvalidSpace = errors.New("invalid coordinate space")

	// ErrNotAChild is returned for parent-relative queries on a node with no
	// parent, for nodes that aren't children of the composition asked about,
	// and for two spaces without a common ancestor
	ErrNotAChild = errors.New("not a child")

	// ErrDetachedItem is returned when a transform to the parent is requested
	// for an item with no parent
	ErrDetachedItem = errors.New("item has no parent")

	// ErrConstructionConflict is returned when mutually exclusive construction
	// arguments are given together
	ErrConstructionConflict = errors.New("conflicting construction arguments")

	// ErrNotAComposition is returned for child operations on a leaf
	ErrNotAComposition = errors.New("not a composition")

	// ErrAlreadyParented is returned when inserting a node that already has a parent
	ErrAlreadyParented = errors.New("child already has a parent")

	// ErrCycle is returned when inserting a node into its own subtree
	ErrCycle = errors.New("child is an ancestor of the composition")
)
