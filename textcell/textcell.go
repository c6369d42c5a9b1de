/*
Copyright 2024 Tim St. Pierre
Fixed capacity text cell used to build one section of a character display
*/
package textcell

import "math"

const digits = "0123456789ABCDEF"

// Scaled magnitudes at or above maxScaled do not fit the integer path.
const maxScaled = 1 << 63

// Cell accumulates characters into a fixed number of cells. Writes past the
// capacity are dropped without error.
type Cell struct {
	buf     []byte
	cnt     int
	dropped int
}

// New returns a blank cell holding capacity characters.
func New(capacity int) *Cell {
	if capacity < 0 {
		capacity = 0
	}
	c := &Cell{buf: make([]byte, capacity)}
	c.Clear()
	return c
}

// Cap returns the number of characters the cell holds.
func (c *Cell) Cap() int {
	return len(c.buf)
}

// Len returns the write cursor.
func (c *Cell) Len() int {
	return c.cnt
}

// Dropped returns how many characters were discarded since the last Clear.
func (c *Cell) Dropped() int {
	return c.dropped
}

// Overflowed reports whether anything was discarded since the last Clear.
func (c *Cell) Overflowed() bool {
	return c.dropped > 0
}

// Clear fills every cell with spaces and rewinds the cursor.
func (c *Cell) Clear() {
	for i := range c.buf {
		c.buf[i] = ' '
	}
	c.cnt = 0
	c.dropped = 0
}

func (c *Cell) PutChar(ch byte) {
	if c.cnt < len(c.buf) {
		c.buf[c.cnt] = ch
		c.cnt++
		return
	}
	c.dropped++
}

// PutDigit writes the hex digit for d. Values outside [0, 16) are ignored.
func (c *Cell) PutDigit(d int) {
	if d >= 0 && d < len(digits) {
		c.PutChar(digits[d])
	}
}

// PutInt writes v in the given base, most significant digit first, with a
// leading '-' for negative values. Bases outside [2, 16] are ignored.
func (c *Cell) PutInt(v int64, base int) {
	if base < 2 || base > 16 {
		return
	}
	u := uint64(v)
	if v < 0 {
		c.PutChar('-')
		u = -u
	}
	c.putUint(u, uint64(base))
}

func (c *Cell) putUint(v, base uint64) {
	// pow ends at the largest power of base not exceeding v.
	pow := uint64(1)
	for pow <= v/base {
		pow *= base
	}
	for ; pow > 0; pow /= base {
		c.PutDigit(int(v / pow % base))
	}
}

// PutDouble writes v with decimals digits after the point. The magnitude is
// scaled by 10^decimals and rounded half away from zero before it is split.
// With decimals <= 0 the value is rounded to the nearest 10^(-decimals) and
// written as an integer. The sign is written before rounding, so a small
// negative value may render as "-0.00".
func (c *Cell) PutDouble(v float64, decimals int) {
	if math.IsNaN(v) {
		c.PutString("NaN")
		return
	}
	if v < 0 {
		c.PutChar('-')
		v = -v
	}
	if math.IsInf(v, 0) {
		c.PutString("Inf")
		return
	}
	if decimals > 0 {
		if decimals > 18 {
			decimals = 18
		}
		scale := pow10(decimals)
		scaled := roundHalfAway(v * float64(scale))
		if scaled >= maxScaled {
			c.PutString("OVF")
			return
		}
		n := uint64(scaled)
		c.putUint(n/scale, 10)
		c.PutChar('.')
		frac := n % scale
		for p := scale / 10; p > 0; p /= 10 {
			c.PutDigit(int(frac / p % 10))
		}
		return
	}
	if decimals < -18 {
		decimals = -18
	}
	step := pow10(-decimals)
	scaled := roundHalfAway(v / float64(step))
	if scaled*float64(step) >= maxScaled {
		c.PutString("OVF")
		return
	}
	c.putUint(uint64(scaled)*step, 10)
}

// PutString writes s until the cell is full.
func (c *Cell) PutString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutChar(s[i])
	}
}

// Write implements io.Writer. It never fails; bytes that do not fit are
// dropped and still counted as written.
func (c *Cell) Write(p []byte) (int, error) {
	for _, b := range p {
		c.PutChar(b)
	}
	return len(p), nil
}

// Get returns a copy of the full cell, unwritten positions padded with spaces.
func (c *Cell) Get() []byte {
	c.pad()
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

func (c *Cell) String() string {
	return string(c.Get())
}

// Send copies the padded cell into dst and returns the number of bytes copied.
func (c *Cell) Send(dst []byte) int {
	c.pad()
	return copy(dst, c.buf)
}

func (c *Cell) pad() {
	for i := c.cnt; i < len(c.buf); i++ {
		c.buf[i] = ' '
	}
}

func roundHalfAway(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}

func pow10(n int) uint64 {
	r := uint64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}
