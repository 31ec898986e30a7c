package timeline

import (
	"fmt"

	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// SpaceKind names a time basis of an item
type SpaceKind int

const (
	// SpaceInternal is the item's own basis. For a clip it is the media
	// basis; for a composition it is the basis children are laid out in.
	SpaceInternal SpaceKind = iota
	// SpaceTrimmed is the internal basis moved so the trimmed range starts at zero
	SpaceTrimmed
	// SpaceEffects is the trimmed basis, where effects are applied
	SpaceEffects
	// SpaceExternal is the basis after effects, as the parent sees the item
	SpaceExternal
	// SpaceGlobal is the basis of a timeline, starting at its global start time
	SpaceGlobal
)

// SpaceMedia is the internal space of a clip
const SpaceMedia = SpaceInternal

func (k SpaceKind) String() string {
	switch k {
	case SpaceInternal:
		return "internal"
	case SpaceTrimmed:
		return "trimmed"
	case SpaceEffects:
		return "effects"
	case SpaceExternal:
		return "external"
	case SpaceGlobal:
		return "global"
	}
	return fmt.Sprintf("SpaceKind(%d)", int(k))
}

// Space is a handle on one time basis of an item. It is only valid while
// the item stays where it was when the handle was made; removing the
// item from its parent invalidates every handle on it.
type Space struct {
	owner  *Node
	kind   SpaceKind
	gen    uint64
	global timing.Time
}

func (n *Node) space(kind SpaceKind) Space {
	return Space{owner: n, kind: kind, gen: n.gen}
}

func (n *Node) InternalSpace() Space { return n.space(SpaceInternal) }
func (n *Node) MediaSpace() Space    { return n.space(SpaceMedia) }
func (n *Node) TrimmedSpace() Space  { return n.space(SpaceTrimmed) }
func (n *Node) EffectsSpace() Space  { return n.space(SpaceEffects) }
func (n *Node) ExternalSpace() Space { return n.space(SpaceExternal) }

// Space returns the handle for kind. The global space belongs to a
// Timeline and is not available here.
func (n *Node) Space(kind SpaceKind) (Space, error) {
	if kind < SpaceInternal || kind >= SpaceGlobal {
		return Space{}, errors.Wrapf(ErrInvalidSpace, "%v space of %s %q", kind, n.kind, n.name)
	}
	return n.space(kind), nil
}

// Owner returns the item the space belongs to.
func (s Space) Owner() *Node { return s.owner }

// Kind returns which basis of its owner s is.
func (s Space) Kind() SpaceKind { return s.kind }

func (s Space) String() string {
	if s.owner == nil {
		return "Space(nil)"
	}
	return fmt.Sprintf("Space(%s %q, %v)", s.owner.kind, s.owner.name, s.kind)
}

// Equal reports whether s and o name the same basis.
func (s Space) Equal(o Space) bool {
	return s.owner == o.owner && s.kind == o.kind && s.gen == o.gen && s.global.Identical(o.global)
}

func (s Space) valid() error {
	switch {
	case s.owner == nil:
		return errors.Wrap(ErrInvalidSpace, "space has no owner")
	case s.gen != s.owner.gen:
		return errors.Wrapf(ErrInvalidSpace, "%v: owner was detached", s)
	case !s.owner.kind.IsItem():
		return errors.Wrapf(ErrInvalidSpace, "%v: %s has no time basis", s, s.owner.kind)
	}
	return nil
}

// toLocal returns the map from s into its owner's internal space.
func (s Space) toLocal() (timing.Transform, error) {
	if s.kind == SpaceInternal {
		return timing.Identity(), nil
	}
	tr, err := s.owner.TrimmedRange()
	if err != nil {
		return timing.Transform{}, errors.Wrapf(err, "%v", s)
	}
	untrim := timing.Translate(tr.Start)
	switch s.kind {
	case SpaceTrimmed, SpaceEffects:
		return untrim, nil
	case SpaceExternal, SpaceGlobal:
		unfx, err := s.owner.EffectsTimeTransform().Inverse()
		if err != nil {
			return timing.Transform{}, errors.Wrapf(err, "%v", s)
		}
		x := untrim.Mul(unfx)
		if s.kind == SpaceGlobal {
			x = x.Mul(timing.Translate(s.global.Neg()))
		}
		return x, nil
	}
	return timing.Transform{}, errors.Wrapf(ErrInvalidSpace, "%v", s)
}
