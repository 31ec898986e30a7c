package timing

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestTransformApply(t *testing.T) {
	for _, tc := range []struct {
		name string
		x    Transform
		in   Time
		want Time
	}{
		{"identity", Identity(), New(5, 24), New(5, 24)},
		{"translate", Translate(New(10, 24)), New(5, 24), New(15, 24)},
		{"scale then offset", NewTransform(New(10, 24), big.NewRat(1, 2)), New(10, 24), New(15, 24)},
		{"target rate", Translate(New(1, 24)).WithRate(big.NewRat(48, 1)), New(1, 24), New(4, 48)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			have := tc.x.Apply(tc.in)
			if !have.Identical(tc.want) {
				t.Fatalf("have %v, want %v", have, tc.want)
			}
		})
	}
}

func TestTransformMulOrder(t *testing.T) {
	a := Translate(New(10, 24))
	b := Scale(big.NewRat(2, 1))
	in := New(3, 24)

	// a.Mul(b): scale first, then translate
	if have, want := a.Mul(b).Apply(in), a.Apply(b.Apply(in)); !have.Equal(want) {
		t.Fatalf("a*b: have %v, want %v", have, want)
	}
	if have := a.Mul(b).Apply(in); !have.Equal(New(16, 24)) {
		t.Fatalf("a*b: have %v, want 16@24", have)
	}
	if have := b.Mul(a).Apply(in); !have.Equal(New(26, 24)) {
		t.Fatalf("b*a: have %v, want 26@24", have)
	}
}

func TestTransformAssociative(t *testing.T) {
	a := NewTransform(New(7, 24), big.NewRat(3, 2))
	b := NewTransform(New(-4, 30), big.NewRat(1, 3))
	c := Translate(New(100, 48))

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if diff := cmp.Diff(left, right); diff != "" {
		t.Fatalf("(a*b)*c != a*(b*c): %s", diff)
	}
	in := New(13, 24)
	if have, want := left.Apply(in), right.Apply(in); !have.Equal(want) {
		t.Fatalf("have %v, want %v", have, want)
	}
}

func TestTransformInverse(t *testing.T) {
	x := NewTransform(New(10, 24), big.NewRat(1, 2))
	inv, err := x.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	in := New(35, 24)
	if have := inv.Apply(x.Apply(in)); !have.Equal(in) {
		t.Fatalf("round trip: have %v, want %v", have, in)
	}
	if !x.Mul(inv).IsIdentity() {
		t.Fatalf("x*inv = %v, want identity", x.Mul(inv))
	}

	_, err = Scale(new(big.Rat)).Inverse()
	if !errors.Is(err, ErrNotInvertible) {
		t.Fatalf("have %v, want ErrNotInvertible", err)
	}
}

func TestTransformInverseKeepsRate(t *testing.T) {
	rate := big.NewRat(48, 1)
	x := NewTransform(New(10, 24), big.NewRat(1, 2)).WithRate(rate)
	inv, err := x.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if have := inv.TargetRate(); have == nil || have.Cmp(rate) != 0 {
		t.Fatalf("TargetRate() = %v, want %v", have, rate)
	}
	if have, want := inv.Mul(x), Identity().WithRate(rate); !have.Equal(want) {
		t.Fatalf("inv*x = %v, want %v", have, want)
	}
	in := New(35, 24)
	if have, want := inv.Apply(x.Apply(in)), New(70, 48); !have.Identical(want) {
		t.Fatalf("round trip: have %v, want %v", have, want)
	}
}

func TestTransformApplyRange(t *testing.T) {
	x := NewTransform(New(10, 24), big.NewRat(1, 2))
	have := x.ApplyRange(NewRange(New(4, 24), New(20, 24)))
	want := NewRange(New(12, 24), New(10, 24))
	if diff := cmp.Diff(have, want); diff != "" {
		t.Fatal(diff)
	}
}
