/*
Copyright 2024 Tim St. Pierre
Buffers a character display as fixed width sections and pushes whole frames
to the device in one batch
*/
package display

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tstpierre-tc/capstone-bms/textcell"
)

// Device is a character display that is redrawn row by row.
type Device interface {
	// Clear blanks the screen.
	Clear() error
	// SetCursor moves the write position, both zero based.
	SetCursor(row, col int) error
	// Print writes line at the cursor.
	Print(line []byte) error
}

// Writer formats values into sections of a frame held in memory. Sections
// are numbered row major: with two sections per row, section 1 is the right
// half of row 0 and section 2 the left half of row 1. Nothing reaches the
// device until Send or Close.
type Writer struct {
	dev     Device
	opts    Opts
	log     logrus.FieldLogger
	width   int
	section int
	dropped int
	cell    *textcell.Cell
	// frame rows are Cols+1 bytes long, the last one always 0.
	frame [][]byte
}

// New returns a writer with a blank frame. dev may be nil, in which case
// Send does nothing. Use default options if nil is used.
func New(dev Device, opts *Opts) (*Writer, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	width, err := opts.sectionWidth()
	if err != nil {
		return nil, err
	}
	w := &Writer{
		dev:   dev,
		opts:  *opts,
		log:   opts.logger(),
		width: width,
		cell:  textcell.New(width),
		frame: make([][]byte, opts.Rows),
	}
	for r := range w.frame {
		w.frame[r] = make([]byte, opts.Cols+1)
	}
	w.blank()
	return w, nil
}

func (w *Writer) String() string {
	return fmt.Sprintf("display{%dx%d/%d}", w.opts.Rows, w.opts.Cols, w.opts.Sections)
}

// SectionWidth returns the number of characters in one section.
func (w *Writer) SectionWidth() int {
	return w.width
}

// Section returns the index of the section the next Newline fills.
func (w *Writer) Section() int {
	return w.section
}

// Dropped returns how many non-empty sections fell outside the frame since
// the last Clear or Overwrite.
func (w *Writer) Dropped() int {
	return w.dropped
}

// PrintInt formats v in base into the current section. Bases outside
// [2, 16] are ignored.
func (w *Writer) PrintInt(v int64, base int) {
	w.cell.PutInt(v, base)
}

// PrintDouble formats v with decimals digits after the point into the
// current section.
func (w *Writer) PrintDouble(v float64, decimals int) {
	w.cell.PutDouble(v, decimals)
}

func (w *Writer) Print(s string) {
	w.cell.PutString(s)
}

func (w *Writer) PrintlnInt(v int64, base int) {
	w.PrintInt(v, base)
	w.Newline()
}

func (w *Writer) PrintlnDouble(v float64, decimals int) {
	w.PrintDouble(v, decimals)
	w.Newline()
}

func (w *Writer) Println(s string) {
	w.Print(s)
	w.Newline()
}

// Newline flushes the current section and moves on to the next one.
func (w *Writer) Newline() {
	w.Flush()
	w.section++
}

// Flush copies the current section into the frame and clears it, without
// moving to the next section. A section outside the frame is discarded and
// counted as dropped only if something was written to it.
func (w *Writer) Flush() {
	row := w.section / w.opts.Sections
	col := (w.section % w.opts.Sections) * w.width
	if row < w.opts.Rows && col < w.opts.Cols {
		w.cell.Send(w.frame[row][col : col+w.width])
	} else if w.cell.Len() > 0 {
		w.dropped++
		w.log.WithField("section", w.section).Debug("display: section outside frame dropped")
	}
	w.cell.Clear()
}

// Overwrite starts a new pass from section 0. The frame keeps its contents
// until the sections are written again.
func (w *Writer) Overwrite() {
	w.section = 0
	w.dropped = 0
	w.cell.Clear()
}

// Clear blanks the device, the frame and the pending section.
func (w *Writer) Clear() error {
	w.blank()
	w.Overwrite()
	if w.dev == nil {
		return nil
	}
	if err := w.dev.Clear(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Send pushes the whole frame to the device: clear, then each row from
// column 0. It is a no-op without a device.
func (w *Writer) Send() error {
	if w.dev == nil {
		return nil
	}
	if err := w.dev.Clear(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	for r, line := range w.frame {
		line[w.opts.Cols] = 0
		if err := w.dev.SetCursor(r, 0); err != nil {
			return fmt.Errorf("display: row %d: %w", r, err)
		}
		if err := w.dev.Print(line[:w.opts.Cols]); err != nil {
			return fmt.Errorf("display: row %d: %w", r, err)
		}
	}
	return nil
}

// Close flushes the pending section and sends the frame.
func (w *Writer) Close() error {
	w.Flush()
	return w.Send()
}

// Frame returns a copy of the frame, one zero terminated row per line.
func (w *Writer) Frame() [][]byte {
	out := make([][]byte, len(w.frame))
	for r, line := range w.frame {
		out[r] = append([]byte(nil), line...)
	}
	return out
}

// Row returns the visible text of row r.
func (w *Writer) Row(r int) string {
	if r < 0 || r >= len(w.frame) {
		return ""
	}
	return string(w.frame[r][:w.opts.Cols])
}

func (w *Writer) blank() {
	for _, line := range w.frame {
		for c := 0; c < w.opts.Cols; c++ {
			line[c] = ' '
		}
		line[w.opts.Cols] = 0
	}
}
