package timeline

import (
	"fmt"
	"testing"

	"github.com/cbsinteractive/timeline/test"
	"github.com/cbsinteractive/timeline/timing"
)

func TestTransformTimeWithinItem(t *testing.T) {
	c := clip("c", 450, 100)
	if err := c.AddEffect(NewLinearTimeWarp("fast", 2)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		from, to Space
		in, want timing.Time
	}{
		{name: "media to external", from: c.MediaSpace(), to: c.ExternalSpace(), in: at(460), want: at(5)},
		{name: "external to media", from: c.ExternalSpace(), to: c.MediaSpace(), in: at(20), want: at(490)},
		{name: "internal to trimmed", from: c.InternalSpace(), to: c.TrimmedSpace(), in: at(460), want: at(10)},
		{name: "trimmed to effects", from: c.TrimmedSpace(), to: c.EffectsSpace(), in: at(10), want: at(10)},
		{name: "effects to external", from: c.EffectsSpace(), to: c.ExternalSpace(), in: at(10), want: at(5)},
		{name: "same space", from: c.ExternalSpace(), to: c.ExternalSpace(), in: at(33), want: at(33)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have, err := TransformTime(tt.in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("TransformTime() error = %v", err)
			}
			test.AssertTime(have, tt.want, "TransformTime()", t)
		})
	}
}

func TestTransformTimeChildToParent(t *testing.T) {
	b := clip("b", 100, 50)
	tr := track(t, "v1", span(5, 100), clip("a", 0, 10), b)

	have, err := TransformTime(at(10), b.ExternalSpace(), tr.InternalSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(have, at(20), "external of b to track internal", t)

	have, err = TransformTime(at(10), b.ExternalSpace(), tr.TrimmedSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(have, at(15), "external of b to track trimmed", t)
}

func TestTransformTimeNested(t *testing.T) {
	d := clip("d", 200, 100)
	inner := track(t, "inner", nil, d)
	st := NewStack("s", span(10, 40))
	if err := st.Append(inner); err != nil {
		t.Fatal(err)
	}
	outer := track(t, "outer", nil, gap(5), st)

	have, err := TransformTime(at(230), d.MediaSpace(), outer.InternalSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(have, at(25), "media of d to outer track", t)

	back, err := TransformTime(have, outer.InternalSpace(), d.MediaSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(back, at(230), "outer track to media of d", t)
}

func TestTransformTimeGlobal(t *testing.T) {
	start := timing.New(86400, 24)
	tl := NewTimeline("edit", &start)
	c := clip("c", 100, 50)
	if err := tl.AddTrack(track(t, "v1", nil, gap(20), c)); err != nil {
		t.Fatal(err)
	}

	have, err := TransformTime(timing.New(86430, 24), tl.GlobalSpace(), c.MediaSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(have, at(110), "global to media", t)

	have, err = TransformTime(at(110), c.MediaSpace(), tl.GlobalSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertTime(have, timing.New(86430, 24), "media to global", t)

	_, err = c.TrimmedRangeIn(tl.GlobalSpace())
	test.AssertWantErr(err, ErrInvalidSpace, "TrimmedRangeIn(global)", t)
}

func TestTransformTimeLaws(t *testing.T) {
	start := timing.New(3600, 24)
	tl := NewTimeline("edit", &start)

	warped := clip("warped", 300, 60)
	if err := warped.AddEffect(NewLinearTimeWarp("warp", 1.5)); err != nil {
		t.Fatal(err)
	}
	d := clip("d", 200, 100)
	inner := track(t, "inner", span(7, 80), gap(3), d)
	st := NewStack("s", span(10, 40))
	if err := st.Append(inner); err != nil {
		t.Fatal(err)
	}
	v1 := track(t, "v1", nil, clip("a", 12, 30), NewTransition("x", TransitionDissolve, at(4), at(4)), warped, st)
	v2 := track(t, "v2", span(2, 50), gap(9), clip("e", 1, 70))
	for _, tr := range []*Node{v1, v2} {
		if err := tl.AddTrack(tr); err != nil {
			t.Fatal(err)
		}
	}

	spaces := []Space{tl.GlobalSpace(), tl.InternalSpace()}
	for n, err := range tl.EachChild(Filter{}) {
		if err != nil {
			t.Fatal(err)
		}
		if n.Kind() == KindTransition {
			continue
		}
		for k := SpaceInternal; k < SpaceGlobal; k++ {
			s, err := n.Space(k)
			if err != nil {
				t.Fatal(err)
			}
			spaces = append(spaces, s)
		}
	}

	in := timing.New(17, 24)
	for _, a := range spaces {
		have, err := TransformTime(in, a, a)
		if err != nil {
			t.Fatalf("identity %v: %v", a, err)
		}
		if !have.Identical(in) {
			t.Errorf("identity %v: have %v, want %v", a, have, in)
		}
		for _, b := range spaces {
			t.Run(fmt.Sprintf("%v to %v", a, b), func(t *testing.T) {
				mid, err := TransformTime(in, a, b)
				if err != nil {
					t.Fatalf("there: %v", err)
				}
				back, err := TransformTime(mid, b, a)
				if err != nil {
					t.Fatalf("back: %v", err)
				}
				test.AssertTime(back, in, "round trip", t)
			})
		}
	}
}

func TestTransformTimeErrors(t *testing.T) {
	c := clip("c", 0, 10)
	tr := track(t, "v1", nil, c)
	stale := c.InternalSpace()
	if _, err := tr.Remove(0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Append(c); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		from, to Space
		wantErr  error
	}{
		{name: "stale handle", from: stale, to: tr.InternalSpace(), wantErr: ErrInvalidSpace},
		{name: "zero handle", from: c.InternalSpace(), to: Space{}, wantErr: ErrInvalidSpace},
		{name: "disjoint trees", from: c.InternalSpace(), to: clip("x", 0, 1).InternalSpace(), wantErr: ErrNotAChild},
		{name: "bad kind", from: c.InternalSpace(), to: Space{owner: c, kind: SpaceKind(42), gen: c.gen}, wantErr: ErrInvalidSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TransformTime(at(1), tt.from, tt.to)
			test.AssertWantErr(err, tt.wantErr, "TransformTime()", t)
		})
	}

	_, err := c.Space(SpaceGlobal)
	test.AssertWantErr(err, ErrInvalidSpace, "Space(global)", t)
}

func TestTransformRange(t *testing.T) {
	c := clip("c", 100, 40)
	if err := c.AddEffect(NewLinearTimeWarp("fast", 2)); err != nil {
		t.Fatal(err)
	}
	tr := track(t, "v1", nil, gap(10), c)

	have, err := TransformRange(*span(110, 20), c.MediaSpace(), tr.InternalSpace())
	if err != nil {
		t.Fatal(err)
	}
	test.AssertRange(have, *span(15, 10), "TransformRange()", t)
}
