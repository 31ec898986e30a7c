package timeline

import (
	"fmt"
	"math/big"
)

// Effect names
const (
	EffectLinearTimeWarp = "LinearTimeWarp"
	EffectFreezeFrame    = "FreezeFrame"
)

// Effect is something applied to an item. Only effects that also
// implement TimeScaler take part in time math; the rest are carried
// along uninterpreted.
type Effect interface {
	Name() string
	EffectName() string
	Metadata() Metadata
	Copy() Effect
}

// TimeScaler is implemented by effects that play their item at a
// constant speed. ok is false when the effect can't be inverted.
type TimeScaler interface {
	TimeScalar() (scalar *big.Rat, ok bool)
}

// GenericEffect is an effect this package doesn't interpret
type GenericEffect struct {
	name       string
	effectName string
	metadata   Metadata
}

func NewEffect(name, effectName string, md Metadata) *GenericEffect {
	return &GenericEffect{name: name, effectName: effectName, metadata: md.Copy()}
}

func (e *GenericEffect) Name() string       { return e.name }
func (e *GenericEffect) EffectName() string { return e.effectName }
func (e *GenericEffect) Metadata() Metadata { return e.metadata }

func (e *GenericEffect) Copy() Effect {
	c := *e
	c.metadata = e.metadata.Copy()
	return &c
}

func (e *GenericEffect) String() string {
	return fmt.Sprintf("Effect(%q, %q)", e.name, e.effectName)
}

// LinearTimeWarp plays its item at scalar times normal speed
type LinearTimeWarp struct {
	GenericEffect
	scalar *big.Rat
}

// NewLinearTimeWarp returns a speed change by scalar. 2 plays twice as fast.
func NewLinearTimeWarp(name string, scalar float64) *LinearTimeWarp {
	s := new(big.Rat)
	if s.SetFloat64(scalar) == nil {
		s = new(big.Rat)
	}
	return &LinearTimeWarp{
		GenericEffect: GenericEffect{name: name, effectName: EffectLinearTimeWarp, metadata: Metadata{}},
		scalar:        s,
	}
}

// NewFreezeFrame returns a hold on a single frame. It has a zero time
// scalar and so is never invertible.
func NewFreezeFrame(name string) *LinearTimeWarp {
	w := NewLinearTimeWarp(name, 0)
	w.effectName = EffectFreezeFrame
	return w
}

func (w *LinearTimeWarp) TimeScalar() (*big.Rat, bool) {
	return new(big.Rat).Set(w.scalar), w.scalar.Sign() != 0
}

func (w *LinearTimeWarp) Copy() Effect {
	c := *w
	c.metadata = w.metadata.Copy()
	c.scalar = new(big.Rat).Set(w.scalar)
	return &c
}

func (w *LinearTimeWarp) String() string {
	return fmt.Sprintf("%s(%q, %s)", w.effectName, w.name, w.scalar.RatString())
}
