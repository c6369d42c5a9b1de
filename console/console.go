/*
Copyright 2024 Tim St. Pierre
Serial console logger with the firmware's prompt style prefixes
*/
package console

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	OutPrefix  = "arduino> "
	WarnPrefix = "WARNING> "
	LogPrefix  = "       > "
)

// Formatter renders one entry per line as prefix, message, then the fields
// as key=value sorted by key.
type Formatter struct{}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(Prefix(e.Level))
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Prefix returns the line prefix used for level.
func Prefix(level logrus.Level) string {
	switch level {
	case logrus.InfoLevel:
		return OutPrefix
	case logrus.DebugLevel, logrus.TraceLevel:
		return LogPrefix
	default:
		return WarnPrefix
	}
}

// New returns a logger writing to w at level. Pass it to whatever needs to
// report on the console instead of sharing a package level printer.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&Formatter{})
	l.SetLevel(level)
	return l
}
