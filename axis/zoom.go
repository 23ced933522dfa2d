package axis

import (
	"math"
	"time"
)

const (
	DefaultMinScale = 0.5
	DefaultMaxScale = 20
)

// Bounds limits the zoom factor.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds allows zooming out to half size and in twenty fold.
var DefaultBounds = Bounds{Min: DefaultMinScale, Max: DefaultMaxScale}

func (b Bounds) clamp(k float64) float64 {
	lo, hi := b.Min, b.Max
	if lo <= 0 {
		lo = DefaultMinScale
	}
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, k))
}

// ZoomTransform is screenX = K*base(t) + X. It only ever applies to the time axis.
type ZoomTransform struct {
	K float64
	X float64
}

// Identity is the unzoomed transform.
var Identity = ZoomTransform{K: 1}

// IsIdentity reports whether z leaves the base scale unchanged.
func (z ZoomTransform) IsIdentity() bool {
	return z == Identity
}

func (z ZoomTransform) k() float64 {
	if z.K == 0 {
		return 1
	}
	return z.K
}

// ApplyX maps a base column to a screen column.
func (z ZoomTransform) ApplyX(x float64) float64 {
	return x*z.k() + z.X
}

// InvertX maps a screen column back to a base column.
func (z ZoomTransform) InvertX(x float64) float64 {
	return (x - z.X) / z.k()
}

// Apply returns the screen column of t under base.
func (z ZoomTransform) Apply(base TimeScale, t time.Time) float64 {
	return z.ApplyX(base.Apply(t))
}

// Invert returns the instant under screen column x.
func (z ZoomTransform) Invert(base TimeScale, x float64) time.Time {
	return base.Invert(z.InvertX(x))
}

// Rescale is the scale whose domain is what is visible across [0, Width].
func (z ZoomTransform) Rescale(base TimeScale) TimeScale {
	if base.Degenerate() {
		return base
	}
	return TimeScale{
		Start: z.Invert(base, 0),
		End:   z.Invert(base, base.Width),
		Width: base.Width,
	}
}

// ZoomAt multiplies the scale by factor keeping the instant under anchor fixed.
func (z ZoomTransform) ZoomAt(factor, anchor, width float64, b Bounds) ZoomTransform {
	if factor <= 0 {
		return z
	}
	k := b.clamp(z.k() * factor)
	p := z.InvertX(anchor)
	next := ZoomTransform{K: k, X: anchor - p*k}
	return next.Constrain(width)
}

// Pan shifts the view by dx columns.
func (z ZoomTransform) Pan(dx, width float64) ZoomTransform {
	next := ZoomTransform{K: z.k(), X: z.X + dx}
	return next.Constrain(width)
}

// Constrain keeps the base range [0, width] covering the viewport when zoomed
// in, and centred in it when zoomed out.
func (z ZoomTransform) Constrain(width float64) ZoomTransform {
	k := z.k()
	dx0 := z.InvertX(0)
	dx1 := z.InvertX(width) - width
	var shift float64
	if dx1 > dx0 {
		shift = (dx0 + dx1) / 2
	} else if m := math.Min(0, dx0); m != 0 {
		shift = m
	} else {
		shift = math.Max(0, dx1)
	}
	return ZoomTransform{K: k, X: z.X + k*shift}
}
