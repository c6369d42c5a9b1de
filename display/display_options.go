/*
Copyright 2024 Tim St. Pierre
Options for the segmented display writer
*/
package display

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrBadGeometry is returned by New when Opts does not describe a usable layout.
var ErrBadGeometry = errors.New("display: bad geometry")

type Opts struct {
	// Visible size of the screen in characters
	Rows int
	Cols int
	// How many equal width sections each row is split into
	Sections int
	// Where drops and device errors are reported, nil for the standard logger
	Logger logrus.FieldLogger
}

var DefaultOpts = Opts{
	Rows:     2,
	Cols:     16,
	Sections: 2,
}

func (o *Opts) sectionWidth() (int, error) {
	if o.Rows <= 0 || o.Cols <= 0 || o.Sections <= 0 {
		return 0, fmt.Errorf("%w: %dx%d with %d sections", ErrBadGeometry, o.Rows, o.Cols, o.Sections)
	}
	if o.Cols%o.Sections != 0 {
		return 0, fmt.Errorf("%w: %d columns do not split into %d sections", ErrBadGeometry, o.Cols, o.Sections)
	}
	return o.Cols / o.Sections, nil
}

func (o *Opts) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
