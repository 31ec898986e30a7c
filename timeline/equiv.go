package timeline

import (
	"github.com/cbsinteractive/timeline/timing"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// snapshot is the hashable shape of a node. Times are keyed by value and
// rate so 1@24 and 2@48 hash differently.
type snapshot struct {
	Kind       string
	Name       string
	Metadata   map[string]interface{}
	Source     []string
	Effects    []effectSnapshot
	Markers    []markerSnapshot
	Media      *mediaSnapshot
	TrackKind  string
	Transition string
	In, Out    string
	Children   []snapshot
}

type effectSnapshot struct {
	Name       string
	EffectName string
	Scalar     string
	Metadata   map[string]interface{}
}

type markerSnapshot struct {
	Name     string
	Range    []string
	Color    string
	Metadata map[string]interface{}
}

type mediaSnapshot struct {
	Name      string
	TargetURL string
	Available []string
	Metadata  map[string]interface{}
}

func rangeKey(r *timing.Range) []string {
	if r == nil {
		return nil
	}
	return []string{r.Start.Key(), r.Duration.Key()}
}

func (n *Node) snapshot() snapshot {
	s := snapshot{
		Kind:       n.kind.String(),
		Name:       n.name,
		Metadata:   n.metadata,
		Source:     rangeKey(n.sourceRange),
		TrackKind:  string(n.trackKind),
		Transition: n.transitionType,
		In:         n.inOffset.Key(),
		Out:        n.outOffset.Key(),
	}
	for _, e := range n.effects {
		es := effectSnapshot{Name: e.Name(), EffectName: e.EffectName(), Metadata: e.Metadata()}
		if ts, ok := e.(TimeScaler); ok {
			sc, _ := ts.TimeScalar()
			es.Scalar = sc.RatString()
		}
		s.Effects = append(s.Effects, es)
	}
	for _, m := range n.markers {
		mr := m.MarkedRange
		s.Markers = append(s.Markers, markerSnapshot{Name: m.Name, Range: rangeKey(&mr), Color: m.Color, Metadata: m.Metadata})
	}
	if n.media != nil {
		s.Media = &mediaSnapshot{
			Name:      n.media.Name,
			TargetURL: n.media.TargetURL,
			Available: rangeKey(n.media.AvailableRange),
			Metadata:  n.media.Metadata,
		}
	}
	for _, c := range n.children {
		s.Children = append(s.Children, c.snapshot())
	}
	return s
}

// Hash returns a hash of the subtree rooted at n covering everything but
// its position in a parent. Equal subtrees hash the same.
func (n *Node) Hash() (uint64, error) {
	h, err := hashstructure.Hash(n.snapshot(), nil)
	if err != nil {
		return 0, errors.Wrapf(err, "hashing %s %q", n.kind, n.name)
	}
	return h, nil
}

// Equivalent reports whether a and b describe the same subtree.
func Equivalent(a, b *Node) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	ha, err := a.Hash()
	if err != nil {
		return false, err
	}
	hb, err := b.Hash()
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
