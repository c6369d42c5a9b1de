package table

import (
	"math"
	"testing"
)

func newTestMap() *Map2d[float64] {
	return NewMap2d([][]float64{
		{0, 10, 20, 30},
		{10, 20, 30, 40},
		{30, 40, 50, 60},
	}, 0, 3, 0, 10)
}

func equalRows(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestResolveRow(t *testing.T) {
	m := newTestMap()
	for _, tc := range []struct {
		s    float64
		want []float64
	}{
		{-5, []float64{0, 10, 20, 30}},
		{0, []float64{0, 10, 20, 30}},
		{2.5, []float64{5, 15, 25, 35}},
		{5, []float64{10, 20, 30, 40}},
		{7.5, []float64{20, 30, 40, 50}},
		{10, []float64{30, 40, 50, 60}},
		{42, []float64{30, 40, 50, 60}},
	} {
		if got := m.ResolveRow(tc.s); !equalRows(got, tc.want) {
			t.Errorf("ResolveRow(%v) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestResolveRowLeavesTableAlone(t *testing.T) {
	m := newTestMap()
	m.ResolveRow(0)
	m.ResolveRow(2.5)
	if got, want := m.rows[0], []float64{0, 10, 20, 30}; !equalRows(got, want) {
		t.Fatalf("row 0 modified: %v", got)
	}
}

func TestXFromYWithS(t *testing.T) {
	m := newTestMap()
	for _, tc := range []struct {
		s, y, want float64
	}{
		{-1, 10, 1},
		{0, 25, 2.5},
		{2.5, 15, 1},
		{2.5, 20, 1.5},
		{5, 10, 0},
		{5, 5, 0},
		{20, 60, 3},
		{20, 99, 3},
		{20, 35, 0.5},
	} {
		if got := m.XFromYWithS(tc.s, tc.y); !near(got, tc.want) {
			t.Errorf("XFromYWithS(%v, %v) = %v, want %v", tc.s, tc.y, got, tc.want)
		}
	}
}

func TestMap2dIsValid(t *testing.T) {
	if !newTestMap().IsValid() {
		t.Fatalf("test map should be valid")
	}
	for _, tc := range []struct {
		name string
		m    *Map2d[float64]
	}{
		{"ragged", NewMap2d([][]float64{{0, 1, 2}, {0, 1}}, 0, 1, 0, 1)},
		{"flat row", NewMap2d([][]float64{{0, 1, 2}, {0, 0, 1}}, 0, 1, 0, 1)},
		{"single row", NewMap2d([][]float64{{0, 1, 2}}, 0, 1, 0, 1)},
		{"empty s", NewMap2d([][]float64{{0, 1, 2}, {1, 2, 3}}, 0, 1, 1, 1)},
		{"empty x", NewMap2d([][]float64{{0, 1, 2}, {1, 2, 3}}, 1, 0, 0, 1)},
	} {
		if tc.m.IsValid() {
			t.Errorf("%s: IsValid() = true, want false", tc.name)
		}
	}
}

func TestMap2dMatchesAscListAtLevels(t *testing.T) {
	m := newTestMap()
	row := NewAscList([]float64{10, 20, 30, 40}, 0, 3)
	for y := 5.0; y <= 45; y += 2.5 {
		if got, want := m.XFromYWithS(5, y), row.XFromY(y); !near(got, want) {
			t.Fatalf("y=%v: map %v, list %v", y, got, want)
		}
	}
}

func TestMap2dNaN(t *testing.T) {
	nan := math.NaN()
	m := newTestMap()
	row := m.ResolveRow(nan)
	if len(row) != 4 {
		t.Fatalf("ResolveRow(NaN) has %d samples, want 4", len(row))
	}
	for i, y := range row {
		if !math.IsNaN(y) {
			t.Fatalf("ResolveRow(NaN)[%d] = %v, want NaN", i, y)
		}
	}
	for _, tc := range []struct {
		name string
		s, y float64
	}{
		{"nan s", nan, 20},
		{"nan y", 5, nan},
		{"both", nan, nan},
	} {
		if got := m.XFromYWithS(tc.s, tc.y); !math.IsNaN(got) {
			t.Errorf("%s: XFromYWithS = %v, want NaN", tc.name, got)
		}
	}
	if got := m.XFromYWithS(0, 10); got != 1 {
		t.Fatalf("after NaN: XFromYWithS(0, 10) = %v, want 1", got)
	}
}
