package timeline

import (
	"testing"

	"github.com/cbsinteractive/timeline/test"
	"github.com/cbsinteractive/timeline/timing"
)

func at(v float64) timing.Time { return timing.New(v, 24) }

func span(start, dur float64) *timing.Range {
	r := timing.NewRange(at(start), at(dur))
	return &r
}

func clip(name string, start, dur float64) *Node {
	media := &MediaReference{Name: name, TargetURL: "file:///" + name + ".mov", AvailableRange: span(0, 1000)}
	return NewClip(name, media, span(start, dur))
}

func gap(dur float64) *Node { return GapOf(at(dur)) }

func track(t *testing.T, name string, sr *timing.Range, children ...*Node) *Node {
	t.Helper()
	tr := NewTrack(name, sr, TrackVideo)
	if err := tr.Append(children...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	return tr
}

func TestCompositionStructure(t *testing.T) {
	a, b, c := clip("a", 0, 10), clip("b", 0, 10), clip("c", 0, 10)
	tr := track(t, "v1", nil, a, c)
	if err := tr.Insert(1, b); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	for i, want := range []*Node{a, b, c} {
		have, err := tr.Child(i)
		if err != nil || have != want {
			t.Errorf("Child(%d) = %v, %v, want %v", i, have, err, want)
		}
		if want.Parent() != tr {
			t.Errorf("%s.Parent() = %v, want %v", want.Name(), want.Parent(), tr)
		}
	}

	old, err := tr.Remove(1)
	if err != nil || old != b {
		t.Fatalf("Remove(1) = %v, %v, want %v", old, err, b)
	}
	if b.Parent() != nil {
		t.Errorf("removed child still has parent %v", b.Parent())
	}
	if _, err := tr.IndexOf(b); !test.AssertWantErr(err, ErrNotAChild, "IndexOf()", t) {
		t.Errorf("IndexOf() found a removed child")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}

	replaced, err := tr.Replace(0, b)
	if err != nil || replaced != a || a.Parent() != nil || b.Parent() != tr {
		t.Errorf("Replace(0) = %v, %v", replaced, err)
	}
}

func TestCompositionInsertErrors(t *testing.T) {
	inner := NewStack("inner", nil)
	outer := NewStack("outer", nil)
	if err := outer.Append(inner); err != nil {
		t.Fatal(err)
	}
	owned := clip("owned", 0, 10)
	if err := inner.Append(owned); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		parent  *Node
		child   *Node
		index   int
		wantErr error
	}{
		{name: "already parented", parent: outer, child: owned, wantErr: ErrAlreadyParented},
		{name: "self", parent: inner, child: inner, wantErr: ErrAlreadyParented},
		{name: "ancestor", parent: inner, child: outer, wantErr: ErrCycle},
		{name: "leaf parent", parent: owned, child: clip("x", 0, 1), wantErr: ErrNotAComposition},
		{name: "bad index", parent: outer, child: clip("y", 0, 1), index: 5, wantErr: ErrNotAChild},
		{name: "nil child", parent: outer, child: nil, wantErr: ErrNotAChild},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.Insert(tt.index, tt.child)
			test.AssertWantErr(err, tt.wantErr, "Insert()", t)
		})
	}

	if _, err := owned.Child(0); !test.AssertWantErr(err, ErrNotAComposition, "Child()", t) {
		t.Error("Child() on a clip succeeded")
	}
	if _, err := outer.Child(3); !test.AssertWantErr(err, ErrNotAChild, "Child()", t) {
		t.Error("Child() out of range succeeded")
	}
}

func TestTrackRangeOfChild(t *testing.T) {
	tr := track(t, "v1", nil,
		clip("a", 0, 50),
		NewTransition("t", TransitionDissolve, at(5), at(7)),
		clip("b", 10, 30),
		gap(20),
	)

	want := []timing.Range{
		*span(0, 50),
		*span(45, 12),
		*span(50, 30),
		*span(80, 20),
	}
	for i, w := range want {
		have, err := tr.RangeOfChild(i)
		if err != nil {
			t.Fatalf("RangeOfChild(%d) error = %v", i, err)
		}
		test.AssertRange(have, w, "RangeOfChild()", t)
	}

	all, err := tr.RangesOfChildren()
	if err != nil {
		t.Fatalf("RangesOfChildren() error = %v", err)
	}
	if len(all) != len(want) {
		t.Fatalf("RangesOfChildren() returned %d ranges, want %d", len(all), len(want))
	}
	for i := range want {
		test.AssertRange(all[i], want[i], "RangesOfChildren()", t)
	}

	avail, err := tr.AvailableRange()
	if err != nil {
		t.Fatalf("AvailableRange() error = %v", err)
	}
	test.AssertRange(avail, *span(0, 100), "AvailableRange()", t)
}

func TestTrackAvailableRangeEdgeTransitions(t *testing.T) {
	tr := track(t, "v1", nil,
		NewTransition("in", TransitionDissolve, at(4), at(4)),
		clip("a", 0, 50),
		NewTransition("out", TransitionDissolve, at(3), at(6)),
	)
	have, err := tr.AvailableRange()
	if err != nil {
		t.Fatalf("AvailableRange() error = %v", err)
	}
	test.AssertRange(have, *span(0, 60), "AvailableRange()", t)
}

func TestTrimmedRangeOfChild(t *testing.T) {
	tr := track(t, "v1", span(40, 30), clip("a", 0, 50), clip("b", 10, 30), gap(20))

	tests := []struct {
		index   int
		want    timing.Range
		wantErr error
	}{
		{index: 0, want: *span(40, 10)},
		{index: 1, want: *span(50, 20)},
		{index: 2, wantErr: ErrNotAChild},
		{index: 3, wantErr: ErrNotAChild},
	}
	for _, tt := range tests {
		have, err := tr.TrimmedRangeOfChild(tt.index)
		if test.AssertWantErr(err, tt.wantErr, "TrimmedRangeOfChild()", t) {
			continue
		}
		test.AssertRange(have, tt.want, "TrimmedRangeOfChild()", t)
	}
}

func TestStackRanges(t *testing.T) {
	st := NewStack("s", nil)
	if err := st.Append(clip("a", 100, 50), clip("b", 0, 80)); err != nil {
		t.Fatal(err)
	}
	for i, w := range []timing.Range{*span(0, 50), *span(0, 80)} {
		have, err := st.RangeOfChild(i)
		if err != nil {
			t.Fatalf("RangeOfChild(%d) error = %v", i, err)
		}
		test.AssertRange(have, w, "RangeOfChild()", t)
	}
	avail, err := st.AvailableRange()
	if err != nil {
		t.Fatal(err)
	}
	test.AssertRange(avail, *span(0, 80), "AvailableRange()", t)
	d, err := st.Duration()
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(d, at(80), "Duration()", t)
}

func TestHandlesOfChild(t *testing.T) {
	a, b := clip("a", 0, 50), clip("b", 10, 30)
	tr := track(t, "v1", nil, a, NewTransition("t", TransitionDissolve, at(5), at(7)), b)

	head, tail, err := tr.HandlesOfChild(a)
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(head, timing.Time{}, "head of a", t)
	test.AssertTime(tail, at(7), "tail of a", t)

	head, tail, err = tr.HandlesOfChild(b)
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(head, at(5), "head of b", t)
	test.AssertTime(tail, timing.Time{}, "tail of b", t)

	_, _, err = tr.HandlesOfChild(clip("stranger", 0, 1))
	test.AssertWantErr(err, ErrNotAChild, "HandlesOfChild()", t)
}
