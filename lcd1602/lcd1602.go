/*
Copyright 2024 Tim St. Pierre
Controls a 1602 character LCD display using I2C backpack
Thanks to Dave Cheney for figuring out the registers!
*/
package lcd1602

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Commands
	CMD_Clear_Display        = 0x01
	CMD_Return_Home          = 0x02
	CMD_Entry_Mode           = 0x04
	CMD_Display_Control      = 0x08
	CMD_Cursor_Display_Shift = 0x10
	CMD_Function_Set         = 0x20
	CMD_DDRAM_Set            = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Cursor_Shift   = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_Display_Shift  = 0x08 // CMD_Cursor_Display_Shift
	OPT_Shift_Right    = 0x04 // CMD_Cursor_Display_Shift 0 = Left
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line
	OPT_5x10_Dots      = 0x04 // CMD_Function_Set 0 = 5x7 dots

	// PCF8574 pins
	RS        = 0
	WR        = 1
	EN        = 2
	BACKLIGHT = 3
	D4        = 4
)

// ErrNoDevice is returned by Probe when no backpack acknowledges.
var ErrNoDevice = errors.New("lcd1602: no device found")

// Clear and Home take up to 1.52ms on the controller.
const slowCommandDelay = 2 * time.Millisecond

type Dev struct {
	c            conn.Conn
	addr         uint16
	opts         Opts
	log          logrus.FieldLogger
	backlight    bool
	cursor       bool
	blink        bool
	displayShift bool
	shiftRight   bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcd1602{%s}", d.c)
}

// Probe returns the highest backpack address on b that acknowledges a write.
func Probe(b i2c.Bus) (uint16, error) {
	for _, addr := range probeAddrs {
		if err := b.Tx(addr, []byte{0x00}, nil); err == nil {
			return addr, nil
		}
	}
	return 0, ErrNoDevice
}

// NewI2C returns a new device that communicates over I²C. The display is
// cleared with the backlight on.
//
// Use default options if nil is used. An I2CAddr of 0 probes the bus.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.geometry(); err != nil {
		return nil, fmt.Errorf("lcd1602: %w", err)
	}
	o := *opts
	if o.I2CAddr == 0 {
		addr, err := Probe(b)
		if err != nil {
			return nil, err
		}
		o.I2CAddr = addr
	}
	addr, err := o.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %#x: %w", addr, err)
	}
	return makeDev(&i2c.Dev{Bus: b, Addr: addr}, addr, &o)
}

func makeDev(c conn.Conn, addr uint16, opts *Opts) (*Dev, error) {
	d := &Dev{
		c:         c,
		addr:      addr,
		opts:      *opts,
		log:       opts.logger().WithField("addr", fmt.Sprintf("%#x", addr)),
		backlight: true,
		cursor:    opts.Cursor,
		blink:     opts.Blink,
	}

	// Reset into 8-bit mode three times, then switch to 4-bit mode.
	for _, wait := range []time.Duration{5 * time.Millisecond, 200 * time.Microsecond, 200 * time.Microsecond} {
		if err := d.nibble(0x03, false); err != nil {
			return nil, d.wrap(err)
		}
		time.Sleep(wait)
	}
	if err := d.nibble(0x02, false); err != nil {
		return nil, d.wrap(err)
	}

	function := byte(CMD_Function_Set)
	if opts.Lines > 1 {
		function |= OPT_2_Lines
	}
	if err := d.command(function); err != nil {
		return nil, err
	}
	if err := d.writeDisplaySwitch(); err != nil {
		return nil, err
	}
	if err := d.writeEntryMode(); err != nil {
		return nil, err
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	d.log.Info("lcd1602: initialised")
	return d, nil
}

// Addr returns the bus address of the backpack.
func (d *Dev) Addr() uint16 {
	return d.addr
}

func (d *Dev) Rows() int {
	return int(d.opts.Lines)
}

func (d *Dev) Cols() int {
	return int(d.opts.Cols)
}

// Halt blanks the screen and turns off the backlight.
func (d *Dev) Halt() error {
	if err := d.Clear(); err != nil {
		return err
	}
	return d.SetBacklight(false)
}

func (d *Dev) SetBacklight(on bool) error {
	d.backlight = on
	return d.wrap(d.send(0))
}

func (d *Dev) Clear() error {
	if err := d.command(CMD_Clear_Display); err != nil {
		return err
	}
	time.Sleep(slowCommandDelay)
	return nil
}

func (d *Dev) Home() error {
	if err := d.command(CMD_Return_Home); err != nil {
		return err
	}
	time.Sleep(slowCommandDelay)
	return nil
}

// SetCursor moves the cursor to a zero based row and column.
func (d *Dev) SetCursor(row, col int) error {
	if row < 0 || row >= int(d.opts.Lines) {
		return fmt.Errorf("lcd1602 %#x: device does not support line %d", d.addr, row)
	}
	if col < 0 || col >= int(d.opts.Cols) {
		return fmt.Errorf("lcd1602 %#x: device does not support col %d", d.addr, col)
	}
	// Lines 2 and 3 continue lines 0 and 1 in display RAM.
	offsets := [4]int{0x00, 0x40, int(d.opts.Cols), 0x40 + int(d.opts.Cols)}
	return d.command(CMD_DDRAM_Set | byte(offsets[row]+col))
}

// Print writes line at the cursor.
func (d *Dev) Print(line []byte) error {
	_, err := d.Write(line)
	return err
}

// Write implements io.Writer, one character at a time.
func (d *Dev) Write(buf []byte) (int, error) {
	for i, c := range buf {
		if err := d.write(c, false); err != nil {
			return i, d.wrap(err)
		}
		if d.opts.CharDelay > 0 {
			time.Sleep(d.opts.CharDelay)
		}
	}
	return len(buf), nil
}

func (d *Dev) SetCursorMode(cursor, blink bool) error {
	d.cursor = cursor
	d.blink = blink
	return d.writeDisplaySwitch()
}

func (d *Dev) SetDisplayShift(value bool) error {
	d.displayShift = value
	return d.writeEntryMode()
}

func (d *Dev) SetShiftRight(value bool) error {
	d.shiftRight = value
	return d.writeEntryMode()
}

func (d *Dev) DisplayShift(right bool) error {
	option := byte(CMD_Cursor_Display_Shift | OPT_Display_Shift)
	if right {
		option |= OPT_Shift_Right
	}
	return d.command(option)
}

func (d *Dev) CursorShift(right bool) error {
	option := byte(CMD_Cursor_Display_Shift)
	if right {
		option |= OPT_Shift_Right
	}
	return d.command(option)
}

func (d *Dev) writeDisplaySwitch() error {
	option := byte(CMD_Display_Control | OPT_Enable_Display)
	if d.cursor {
		option |= OPT_Enable_Cursor
	}
	if d.blink {
		option |= OPT_Enable_Blink
	}
	return d.command(option)
}

func (d *Dev) writeEntryMode() error {
	option := byte(CMD_Entry_Mode)
	if !d.shiftRight {
		option |= OPT_Increment
	}
	if d.displayShift {
		option |= OPT_Cursor_Shift
	}
	return d.command(option)
}

func (d *Dev) command(data byte) error {
	return d.wrap(d.write(data, true))
}

// write sends data as two nibbles, high first.
func (d *Dev) write(data byte, command bool) error {
	d.log.WithFields(logrus.Fields{"data": fmt.Sprintf("%#02x", data), "command": command}).Debug("lcd1602: write")
	if err := d.nibble(data>>4, !command); err != nil {
		return err
	}
	return d.nibble(data&0x0F, !command)
}

// nibble puts n on D4..D7 and toggles Enable.
func (d *Dev) nibble(n byte, register bool) error {
	data := (n & 0x0F) << D4
	if register {
		data |= 1 << RS
	}
	if err := d.send(data); err != nil {
		return err
	}
	time.Sleep(40 * time.Microsecond)
	if err := d.send(data | 1<<EN); err != nil {
		return err
	}
	time.Sleep(40 * time.Microsecond)
	return d.send(data)
}

// send writes the expander port, keeping the backlight pin as set.
func (d *Dev) send(data byte) error {
	if d.backlight {
		data |= 1 << BACKLIGHT
	} else {
		data &^= 1 << BACKLIGHT
	}
	return d.c.Tx([]byte{data}, nil)
}

func (d *Dev) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("lcd1602 %#x: %w", d.addr, err)
}
