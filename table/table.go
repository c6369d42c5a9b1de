/*
Copyright 2024 Tim St. Pierre
Lookup tables inverting strictly increasing sampled functions
*/
package table

import (
	"math"

	"golang.org/x/exp/constraints"
)

// AscList samples a strictly increasing function y(x) at n+1 evenly spaced
// points over [XLeft, XRight]. The table is never modified after
// construction; NewAscList does not check it, see IsValid.
type AscList[T constraints.Float] struct {
	ys     []T
	xLeft  T
	xRight T
}

// NewAscList wraps ys, sampled from xLeft (ys[0]) to xRight (ys[len-1]).
// ys is not copied.
func NewAscList[T constraints.Float](ys []T, xLeft, xRight T) *AscList[T] {
	return &AscList[T]{ys: ys, xLeft: xLeft, xRight: xRight}
}

// Intervals returns the number of intervals between samples.
func (l *AscList[T]) Intervals() int {
	return len(l.ys) - 1
}

// Bounds returns the domain covered by the samples.
func (l *AscList[T]) Bounds() (T, T) {
	return l.xLeft, l.xRight
}

// Samples returns the sample table. Callers must not modify it.
func (l *AscList[T]) Samples() []T {
	return l.ys
}

// IsValid reports whether the domain is non-empty and the samples strictly
// increase. Results from an invalid table are unspecified.
func (l *AscList[T]) IsValid() bool {
	return l.xLeft < l.xRight && ascending(l.ys)
}

// XFromParameter maps a sample index in [0, n] onto [XLeft, XRight].
func (l *AscList[T]) XFromParameter(param T) T {
	return xFromParameter(param, l.xLeft, l.xRight, l.Intervals())
}

// XFromY inverts the table: it returns the x whose sampled y equals y,
// interpolating linearly between bracketing samples. Values outside the
// sampled range clamp to XLeft or XRight. A NaN y gives NaN.
func (l *AscList[T]) XFromY(y T) T {
	if y != y {
		return nan[T]()
	}
	return l.XFromParameter(parameterFromY(l.ys, y))
}

// YFromX is the forward lookup. x is clamped to the domain and samples on
// the grid are returned exactly. A NaN x gives NaN.
func (l *AscList[T]) YFromX(x T) T {
	n := l.Intervals()
	switch {
	case x != x:
		return nan[T]()
	case n < 0:
		return 0
	case x <= l.xLeft:
		return l.ys[0]
	case x >= l.xRight:
		return l.ys[n]
	}
	param := (x - l.xLeft) * (T(n) / (l.xRight - l.xLeft))
	idx := int(param)
	if idx >= n {
		return l.ys[n]
	}
	if T(idx) == param {
		return l.ys[idx]
	}
	return (l.ys[idx+1]-l.ys[idx])*(param-T(idx)) + l.ys[idx]
}

func xFromParameter[T constraints.Float](param, xLeft, xRight T, n int) T {
	return param*(xRight-xLeft)/T(n) + xLeft
}

// parameterFromY returns the fractional index of y in ys. An exact match
// returns its index; y outside the samples returns 0 or n.
func parameterFromY[T constraints.Float](ys []T, y T) T {
	n := len(ys) - 1
	low, high := 0, n
	for low <= high {
		mid := low + (high-low)/2
		switch {
		case ys[mid] > y:
			high = mid - 1
		case ys[mid] < y:
			low = mid + 1
		default:
			return T(mid)
		}
	}
	if low > n {
		return T(n)
	}
	if high < 0 {
		return 0
	}
	return (y-ys[high])/(ys[low]-ys[high])*T(low-high) + T(high)
}

func ascending[T constraints.Float](ys []T) bool {
	if len(ys) < 2 {
		return false
	}
	for i := 0; i+1 < len(ys); i++ {
		if !(ys[i] < ys[i+1]) {
			return false
		}
	}
	return true
}

func nan[T constraints.Float]() T {
	return T(math.NaN())
}
