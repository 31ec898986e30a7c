package timing

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/pkg/video"
	"github.com/pkg/errors"
)

// ErrBadTimecode is returned when a timecode string can't be parsed
var ErrBadTimecode = errors.New("bad timecode")

var timecodeRE = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d)(?:[:;](\d{1,3}))?$`)

// RateFromFramerate returns the exact rate of a fractional frame rate
// such as 30000/1001.
func RateFromFramerate(f video.Framerate) (*big.Rat, error) {
	if f.Empty() || f.Numerator < 0 || f.Denominator < 0 {
		return nil, errors.Wrapf(ErrBadRate, "framerate %d/%d", f.Numerator, f.Denominator)
	}
	return big.NewRat(int64(f.Numerator), int64(f.Denominator)), nil
}

// Framerate returns t's rate as a fractional frame rate. Rates whose
// numerator or denominator don't fit an int are approximated.
func (t Time) Framerate() video.Framerate {
	r := t.r()
	if r.Num().IsInt64() && r.Denom().IsInt64() &&
		r.Num().Int64() <= math.MaxInt32 && r.Denom().Int64() <= math.MaxInt32 {
		return video.Framerate{Numerator: int(r.Num().Int64()), Denominator: int(r.Denom().Int64())}
	}
	f, _ := r.Float64()
	return video.Framerate{Numerator: int(math.Round(f * 1000)), Denominator: 1000}
}

// Frames returns the whole number of samples in t, rounding toward
// negative infinity.
func (t Time) Frames() int64 {
	q := new(big.Int).Div(t.v().Num(), t.v().Denom())
	return q.Int64()
}

// FromTimecode parses HH:MM:SS:FF (or HH:MM:SS;FF, or HH:MM:SS) at rate.
// Frames are counted at the rate rounded up to a whole number, the same
// way Timecode formats them, so the two round-trip at fractional rates.
func FromTimecode(tc string, rate float64) (Time, error) {
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return Time{}, errors.Wrapf(ErrBadRate, "rate %v", rate)
	}
	m := timecodeRE.FindStringSubmatch(tc)
	if m == nil {
		return Time{}, errors.Wrapf(ErrBadTimecode, "%q", tc)
	}
	nominal := int64(math.Ceil(rate))

	var f [4]int64
	for i, field := range m[1:] {
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Time{}, errors.Wrapf(ErrBadTimecode, "%q: %v", tc, err)
		}
		f[i] = n
	}
	h, mm, ss, ff := f[0], f[1], f[2], f[3]
	if ff >= nominal {
		return Time{}, errors.Wrapf(ErrBadTimecode, "%q: frame %d at %d fps", tc, ff, nominal)
	}
	frames := (h*3600+mm*60+ss)*nominal + ff
	return New(float64(frames), rate), nil
}

// Timecode formats t as HH:MM:SS:FF counting whole frames at t's rate.
// Fractional rates count frames at the rate rounded up to a whole number,
// without drop-frame compensation.
func (t Time) Timecode() string {
	fps := new(big.Int).Add(t.r().Num(), new(big.Int).Sub(t.r().Denom(), big.NewInt(1)))
	fps.Div(fps, t.r().Denom())
	nominal := fps.Int64()

	frames := t.Frames()
	sign := ""
	if frames < 0 {
		sign = "-"
		frames = -frames
	}
	ff := frames % nominal
	secs := frames / nominal
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60, ff)
}

// Seconds returns r as a pair of decimal seconds.
func (r Range) Seconds() timecode.Range {
	return timecode.Range{r.Start.SecondsFloat(), r.End().SecondsFloat()}
}
