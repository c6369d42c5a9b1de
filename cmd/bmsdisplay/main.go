/*
Copyright 2024 Tim St. Pierre
Shows cell voltages and the matching state of charge on a 1602 LCD
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tstpierre-tc/capstone-bms/console"
	"github.com/tstpierre-tc/capstone-bms/display"
	"github.com/tstpierre-tc/capstone-bms/lcd1602"
	"github.com/tstpierre-tc/capstone-bms/pins"
	"github.com/tstpierre-tc/capstone-bms/table"
)

type config struct {
	busName      string
	addr         uint16
	rows, cols   int
	sections     int
	tableName    string
	decimals     int
	dryRun       bool
	balancePins  string
	balanceAbove float64
}

func main() {
	var cfg config
	addr := flag.Uint("addr", 0, "LCD backpack address, 0 to probe")
	flag.StringVar(&cfg.busName, "bus", "", "I²C bus name, empty for the first one")
	flag.IntVar(&cfg.rows, "rows", 2, "LCD rows")
	flag.IntVar(&cfg.cols, "cols", 16, "LCD columns")
	flag.IntVar(&cfg.sections, "sections", 2, "sections per row")
	flag.StringVar(&cfg.tableName, "table", "ocv", "lookup table: ocv (open circuit) or vcell (under load)")
	flag.IntVar(&cfg.decimals, "decimals", 1, "digits after the point for the state of charge")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "print the frame instead of driving the LCD")
	flag.StringVar(&cfg.balancePins, "balance", "", "comma separated balance GPIOs, one per cell")
	flag.Float64Var(&cfg.balanceAbove, "balance-above", 4.15, "cell voltage at which its balance GPIO is driven high")
	verbose := flag.Bool("v", false, "log bus traffic")
	flag.Parse()
	cfg.addr = uint16(*addr)

	level := logrus.InfoLevel
	if *verbose {
		level = logrus.DebugLevel
	}
	log := console.New(os.Stderr, level)
	if err := run(log, cfg, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run renders the cells given in args. Without a device the frame is written
// to out.
func run(log logrus.FieldLogger, cfg config, args []string, out io.Writer) error {
	volts, err := parseVolts(args)
	if err != nil {
		return err
	}
	tbl, err := selectTable(cfg.tableName)
	if err != nil {
		return err
	}

	var dev display.Device
	if !cfg.dryRun {
		if _, err := host.Init(); err != nil {
			log.Warnf("host init: %v", err)
		} else {
			lcd, closer := openLCD(log, cfg.busName, cfg.addr, cfg.rows, cfg.cols)
			if closer != nil {
				defer closer.Close()
			}
			if lcd != nil {
				dev = lcd
			}
			outs, err := balanceOutputs(cfg.balancePins)
			if err != nil {
				return err
			}
			if err := balance(log, volts, outs, cfg.balanceAbove); err != nil {
				return err
			}
		}
	}

	w, err := display.New(dev, &display.Opts{Rows: cfg.rows, Cols: cfg.cols, Sections: cfg.sections, Logger: log})
	if err != nil {
		return err
	}
	render(w, volts, tbl, cfg.decimals)
	if err := w.Close(); err != nil {
		return err
	}
	if dev == nil {
		for r := 0; r < cfg.rows; r++ {
			fmt.Fprintf(out, "|%s|\n", w.Row(r))
		}
	}
	return nil
}

// render writes one voltage section and one state of charge section per cell.
func render(w *display.Writer, volts []float64, tbl *table.AscList[float64], decimals int) {
	for i, v := range volts {
		w.Print("V")
		w.PrintInt(int64(i+1), 10)
		w.Print(":")
		w.PrintlnDouble(v, 2)
		w.Print("S:")
		w.PrintDouble(tbl.XFromY(v), decimals)
		w.Println("%")
	}
}

func parseVolts(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no cell voltages given")
	}
	volts := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("cell voltage %q: %w", a, err)
		}
		volts = append(volts, v)
	}
	return volts, nil
}

func selectTable(name string) (*table.AscList[float64], error) {
	switch name {
	case "ocv":
		return table.SocOcv, nil
	case "vcell":
		return table.SocVcell, nil
	}
	return nil, fmt.Errorf("unknown table %q", name)
}

// openLCD returns nil when no display can be reached; the frame is then
// only printed. host.Init must have succeeded.
func openLCD(log logrus.FieldLogger, busName string, addr uint16, rows, cols int) (*lcd1602.Dev, io.Closer) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		log.Warnf("failed to open I2C: %v", err)
		return nil, nil
	}
	opts := lcd1602.DefaultOpts
	opts.I2CAddr = addr
	opts.Lines = uint8(rows)
	opts.Cols = uint8(cols)
	opts.Logger = log
	lcd, err := lcd1602.NewI2C(bus, &opts)
	if err != nil {
		log.Warnf("no LCD: %v", err)
		return nil, bus
	}
	log.WithField("addr", fmt.Sprintf("%#x", lcd.Addr())).Info("I2C connected")
	return lcd, bus
}

func balanceOutputs(names string) ([]pins.Output, error) {
	if names == "" {
		return nil, nil
	}
	var outs []pins.Output
	for _, n := range strings.Split(names, ",") {
		p := gpioreg.ByName(strings.TrimSpace(n))
		if p == nil {
			return nil, fmt.Errorf("balance pin %q not found", n)
		}
		outs = append(outs, p)
	}
	return outs, nil
}

// balance drives the balance output of every cell at or above the threshold
// high and the rest low. Outputs beyond the last cell are left alone.
func balance(log logrus.FieldLogger, volts []float64, outs []pins.Output, above float64) error {
	for i, out := range outs {
		if i >= len(volts) {
			break
		}
		if err := pins.NewSetter(out, log).InitWith(volts[i] >= above); err != nil {
			return fmt.Errorf("balance cell %d: %w", i+1, err)
		}
	}
	return nil
}
