/*
Copyright 2024 Tim St. Pierre
Two dimensional lookup table selecting a sample row by a secondary parameter
*/
package table

import "golang.org/x/exp/constraints"

// Map2d is an AscList with a second parameter s. Each row holds the samples
// for one evenly spaced level of s over [SMin, SMax]; rows between levels are
// interpolated. The resolved row is kept in a scratch buffer, so a Map2d must
// not be shared between goroutines.
type Map2d[T constraints.Float] struct {
	rows   [][]T
	width  int
	xLeft  T
	xRight T
	sMin   T
	sMax   T
	ys     []T
}

// NewMap2d wraps rows; rows[0] is sampled at sMin and the last row at sMax.
// Rows are truncated to the shortest one.
func NewMap2d[T constraints.Float](rows [][]T, xLeft, xRight, sMin, sMax T) *Map2d[T] {
	width := 0
	for i, r := range rows {
		if i == 0 || len(r) < width {
			width = len(r)
		}
	}
	return &Map2d[T]{
		rows:   rows,
		width:  width,
		xLeft:  xLeft,
		xRight: xRight,
		sMin:   sMin,
		sMax:   sMax,
		ys:     make([]T, width),
	}
}

// Intervals returns the number of intervals along x.
func (m *Map2d[T]) Intervals() int {
	return m.width - 1
}

// Levels returns the number of intervals along s.
func (m *Map2d[T]) Levels() int {
	return len(m.rows) - 1
}

// IsValid reports whether both domains are non-empty, every row has the same
// width and every row strictly increases.
func (m *Map2d[T]) IsValid() bool {
	if !(m.xLeft < m.xRight) || !(m.sMin < m.sMax) || len(m.rows) < 2 {
		return false
	}
	for _, r := range m.rows {
		if len(r) != m.width || !ascending(r) {
			return false
		}
	}
	return true
}

// XFromParameter maps a sample index in [0, n] onto [XLeft, XRight].
func (m *Map2d[T]) XFromParameter(param T) T {
	return xFromParameter(param, m.xLeft, m.xRight, m.Intervals())
}

// ResolveRow returns the sample row for s. s at or beyond either end of
// [SMin, SMax] selects that end's row verbatim. The returned slice is reused
// by the next call. A NaN s fills the row with NaN.
func (m *Map2d[T]) ResolveRow(s T) []T {
	levels := m.Levels()
	switch {
	case levels < 0:
		return m.ys[:0]
	case s != s:
		for i := range m.ys {
			m.ys[i] = s
		}
		return m.ys
	case s <= m.sMin:
		copy(m.ys, m.rows[0])
		return m.ys
	case s >= m.sMax:
		copy(m.ys, m.rows[levels])
		return m.ys
	}
	paramS := (s - m.sMin) * (T(levels) / (m.sMax - m.sMin))
	idx := int(paramS)
	if idx >= levels {
		copy(m.ys, m.rows[levels])
		return m.ys
	}
	frac := paramS - T(idx)
	lo, hi := m.rows[idx], m.rows[idx+1]
	for i := range m.ys {
		m.ys[i] = (hi[i]-lo[i])*frac + lo[i]
	}
	return m.ys
}

// XFromYWithS resolves the row for s and inverts it like AscList.XFromY.
// NaN in either s or y gives NaN.
func (m *Map2d[T]) XFromYWithS(s, y T) T {
	if s != s || y != y {
		return nan[T]()
	}
	return m.XFromParameter(parameterFromY(m.ResolveRow(s), y))
}
