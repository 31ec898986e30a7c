package timing

import (
	"fmt"
	"math/big"
)

// Transform is the affine map t -> t*scale + offset, optionally
// expressed at a target rate. Transforms compose like matrices:
// a.Mul(b) applied to t equals a applied to (b applied to t).
//
// The zero Transform is the identity.
type Transform struct {
	offset Time
	scale  *big.Rat
	rate   *big.Rat
}

// Identity returns the transform that changes nothing.
func Identity() Transform { return Transform{} }

// Translate returns the transform that adds offset.
func Translate(offset Time) Transform {
	return Transform{offset: offset}
}

// Scale returns the transform that multiplies by s.
func Scale(s *big.Rat) Transform {
	return Transform{scale: new(big.Rat).Set(s)}
}

// NewTransform returns t -> t*scale + offset.
func NewTransform(offset Time, scale *big.Rat) Transform {
	x := Transform{offset: offset}
	if scale != nil {
		x.scale = new(big.Rat).Set(scale)
	}
	return x
}

// WithRate returns x with results expressed at rate. A nil rate keeps the
// rate of the input.
func (x Transform) WithRate(rate *big.Rat) Transform {
	if rate != nil {
		rate = new(big.Rat).Set(rate)
	}
	x.rate = rate
	return x
}

func (x Transform) s() *big.Rat {
	if x.scale == nil {
		return one
	}
	return x.scale
}

// Offset returns the translation component.
func (x Transform) Offset() Time { return x.offset }

// ScaleRat returns a copy of the scale component.
func (x Transform) ScaleRat() *big.Rat { return new(big.Rat).Set(x.s()) }

// ScaleFloat returns the scale component as a float64.
func (x Transform) ScaleFloat() float64 {
	f, _ := x.s().Float64()
	return f
}

// TargetRate returns the rate results are expressed at, or nil.
func (x Transform) TargetRate() *big.Rat {
	if x.rate == nil {
		return nil
	}
	return new(big.Rat).Set(x.rate)
}

// IsIdentity reports whether x maps every time to itself.
func (x Transform) IsIdentity() bool {
	return x.s().Cmp(one) == 0 && x.offset.IsZero()
}

// Apply maps t through x.
func (x Transform) Apply(t Time) Time {
	r := t.Scale(x.s()).Add(x.offset)
	if x.rate != nil {
		r = r.Rescale(x.rate)
	}
	return r
}

// ApplyRange maps the start of r through x and scales its duration.
func (x Transform) ApplyRange(r Range) Range {
	d := r.Duration.Scale(x.s())
	if x.rate != nil {
		d = d.Rescale(x.rate)
	}
	return Range{Start: x.Apply(r.Start), Duration: d}
}

// Mul returns the composition of x and y: y is applied first, then x.
func (x Transform) Mul(y Transform) Transform {
	off := x.offset
	if !y.offset.IsZero() {
		off = y.offset.Scale(x.s()).Add(x.offset)
	}
	z := Transform{offset: off, scale: mul(x.s(), y.s()), rate: x.rate}
	if z.rate == nil {
		z.rate = y.rate
	}
	return z
}

// Inverse returns the transform that undoes x. The target rate of x is
// kept, so x.Inverse().Mul(x) is the identity at that rate.
func (x Transform) Inverse() (Transform, error) {
	if x.s().Sign() == 0 {
		return Transform{}, ErrNotInvertible
	}
	inv := new(big.Rat).Inv(x.s())
	return Transform{offset: x.offset.Neg().Scale(inv), scale: inv, rate: x.rate}, nil
}

// Equal reports whether x and y describe the same map.
func (x Transform) Equal(y Transform) bool {
	if x.s().Cmp(y.s()) != 0 || !x.offset.Equal(y.offset) {
		return false
	}
	if x.rate == nil || y.rate == nil {
		return x.rate == nil && y.rate == nil
	}
	return x.rate.Cmp(y.rate) == 0
}

func (x Transform) String() string {
	return fmt.Sprintf("Transform(offset=%v, scale=%s)", x.offset, x.s().RatString())
}
