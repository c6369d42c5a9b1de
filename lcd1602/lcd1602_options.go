/*
Copyright 2024 Tim St. Pierre
Options for lcd1602 character display
*/
package lcd1602

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

type Opts struct {
	// The I²C slave address, 0 to probe for the backpack
	I2CAddr uint16
	// How many lines does the display have
	Lines     uint8
	Cols      uint8
	CharDelay time.Duration
	// Show an underline cursor and make it blink
	Cursor bool
	Blink  bool
	// Where bus traffic is logged, nil for the standard logger
	Logger logrus.FieldLogger
}

var DefaultOpts = Opts{
	I2CAddr:   0x27,
	Lines:     2,
	Cols:      16,
	CharDelay: 1 * time.Millisecond,
}

// probeAddrs lists the PCF8574A then PCF8574 backpack addresses, highest
// first.
var probeAddrs = []uint16{
	0x3F, 0x3E, 0x3D, 0x3C, 0x3B, 0x3A, 0x39, 0x38,
	0x27, 0x26, 0x25, 0x24, 0x23, 0x22, 0x21, 0x20,
}

var errAddr = errors.New("given address not supported by device")

func (o *Opts) i2cAddr() (uint16, error) {
	switch o.I2CAddr {
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		return o.I2CAddr, nil
	case 0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F:
		return o.I2CAddr, nil
	default:
		return o.I2CAddr, errAddr
	}
}

func (o *Opts) geometry() error {
	switch {
	case o.Lines == 0 || o.Lines > 4:
		return errors.New("device supports 1 to 4 lines")
	case o.Cols == 0 || o.Cols > 40:
		return errors.New("device supports 1 to 40 cols")
	}
	return nil
}

func (o *Opts) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
