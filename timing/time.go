// Package timing implements exact rational media time. The three types in
// this package are:
//
// 	Time      a sample count at a sample rate
// 	Range     a start Time and a duration Time
// 	Transform an affine remap (scale, then offset) between two time bases
//
// Values are backed by math/big rationals and are never mutated once built,
// so a Time may be shared and copied freely. Arithmetic between two times
// at different rates converts by exact rational scaling; nothing truncates.
package timing

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrNegativeDuration is returned when a Range would end before it starts
	ErrNegativeDuration = errors.New("negative duration")

	// ErrNotInvertible is returned when inverting a Transform with a zero scale
	ErrNotInvertible = errors.New("transform is not invertible")

	// ErrBadRate is returned for rates that are zero or negative
	ErrBadRate = errors.New("rate must be positive")
)

var (
	zero = new(big.Rat)
	one  = big.NewRat(1, 1)
)

// Time is a rational instant or duration: Value samples at Rate samples
// per second. The zero Time is zero samples at rate 1.
type Time struct {
	value *big.Rat
	rate  *big.Rat
}

// New returns value samples at rate samples per second. Both arguments are
// converted exactly; New panics on a non-positive or non-finite rate.
func New(value, rate float64) Time {
	v, r := new(big.Rat), new(big.Rat)
	if v.SetFloat64(value) == nil {
		panic(fmt.Sprintf("timing: value %v is not finite", value))
	}
	if r.SetFloat64(rate) == nil || r.Sign() <= 0 {
		panic(fmt.Sprintf("timing: bad rate %v", rate))
	}
	return Time{value: v, rate: r}
}

// Rat returns value samples at rate samples per second.
func Rat(value, rate *big.Rat) (Time, error) {
	if rate == nil || rate.Sign() <= 0 {
		return Time{}, errors.Wrapf(ErrBadRate, "rate %v", rate)
	}
	if value == nil {
		value = zero
	}
	return Time{value: new(big.Rat).Set(value), rate: new(big.Rat).Set(rate)}, nil
}

// FromSeconds returns s seconds expressed at rate.
func FromSeconds(s, rate float64) Time {
	t := New(0, rate)
	return t.withValue(mul(ratOf(s), t.r()))
}

// Zero returns zero samples at rate.
func Zero(rate *big.Rat) Time {
	if rate == nil || rate.Sign() <= 0 {
		return Time{value: zero, rate: one}
	}
	return Time{value: zero, rate: new(big.Rat).Set(rate)}
}

func ratOf(f float64) *big.Rat {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		panic(fmt.Sprintf("timing: %v is not finite", f))
	}
	return r
}

func (t Time) v() *big.Rat {
	if t.value == nil {
		return zero
	}
	return t.value
}

func (t Time) r() *big.Rat {
	if t.rate == nil {
		return one
	}
	return t.rate
}

func (t Time) withValue(v *big.Rat) Time {
	return Time{value: v, rate: t.r()}
}

// Value returns a copy of the sample count.
func (t Time) Value() *big.Rat { return new(big.Rat).Set(t.v()) }

// Rate returns a copy of the sample rate.
func (t Time) Rate() *big.Rat { return new(big.Rat).Set(t.r()) }

// Float returns the sample count as a float64.
func (t Time) Float() float64 {
	f, _ := t.v().Float64()
	return f
}

// RateFloat returns the sample rate as a float64.
func (t Time) RateFloat() float64 {
	f, _ := t.r().Float64()
	return f
}

// Seconds returns the exact number of seconds t represents.
func (t Time) Seconds() *big.Rat {
	return new(big.Rat).Quo(t.v(), t.r())
}

// SecondsFloat returns Seconds as a float64.
func (t Time) SecondsFloat() float64 {
	f, _ := t.Seconds().Float64()
	return f
}

// Rescale returns t expressed at rate.
func (t Time) Rescale(rate *big.Rat) Time {
	if rate == nil || rate.Sign() <= 0 || rate.Cmp(t.r()) == 0 {
		return t
	}
	return Time{value: mul(t.Seconds(), rate), rate: new(big.Rat).Set(rate)}
}

// RescaleTo returns t expressed at the rate of u.
func (t Time) RescaleTo(u Time) Time { return t.Rescale(u.r()) }

// Add returns t+u at t's rate.
func (t Time) Add(u Time) Time {
	return t.withValue(new(big.Rat).Add(t.v(), u.Rescale(t.r()).v()))
}

// Sub returns t-u at t's rate.
func (t Time) Sub(u Time) Time {
	return t.withValue(new(big.Rat).Sub(t.v(), u.Rescale(t.r()).v()))
}

// Neg returns -t.
func (t Time) Neg() Time {
	return t.withValue(new(big.Rat).Neg(t.v()))
}

// Scale returns t multiplied by s at t's rate.
func (t Time) Scale(s *big.Rat) Time {
	return t.withValue(mul(t.v(), s))
}

// Cmp compares t and u by the instant they represent and
// returns -1, 0 or +1.
func (t Time) Cmp(u Time) int {
	return t.Seconds().Cmp(u.Seconds())
}

// Equal reports whether t and u are the same instant, regardless of rate.
func (t Time) Equal(u Time) bool { return t.Cmp(u) == 0 }

// Identical reports whether t and u have the same value and the same rate.
func (t Time) Identical(u Time) bool {
	return t.v().Cmp(u.v()) == 0 && t.r().Cmp(u.r()) == 0
}

func (t Time) Less(u Time) bool { return t.Cmp(u) < 0 }

func (t Time) IsZero() bool { return t.v().Sign() == 0 }

func (t Time) Sign() int { return t.v().Sign() }

// Max returns the later of t and u.
func Max(t, u Time) Time {
	if u.Cmp(t) > 0 {
		return u
	}
	return t
}

// Min returns the earlier of t and u.
func Min(t, u Time) Time {
	if u.Cmp(t) < 0 {
		return u
	}
	return t
}

// Key returns an exact textual form suitable for hashing: value@rate
// with both sides as reduced fractions.
func (t Time) Key() string {
	return t.v().RatString() + "@" + t.r().RatString()
}

func (t Time) String() string {
	return fmt.Sprintf("Time(%s, %s)", t.v().RatString(), t.r().RatString())
}

func mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
