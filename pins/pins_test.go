package pins

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeADC struct {
	raw   []int32
	reads int
	err   error
}

func (f *fakeADC) String() string { return "A0" }

func (f *fakeADC) Read() (analog.Sample, error) {
	if f.err != nil {
		return analog.Sample{}, f.err
	}
	raw := f.raw[f.reads%len(f.raw)]
	f.reads++
	return analog.Sample{Raw: raw, V: physic.ElectricPotential(raw) * physic.MilliVolt}, nil
}

func TestReadSignalSingleSample(t *testing.T) {
	adc := &fakeADC{raw: []int32{300, 900}}
	r := NewReader(adc, quiet())
	sig, err := r.ReadSignal(context.Background(), 0)
	if err != nil {
		t.Fatalf("ReadSignal: %v", err)
	}
	if sig.Samples != 1 || sig.Raw != 300 || sig.V != 300*physic.MilliVolt {
		t.Fatalf("got %+v, want one sample of 300", sig)
	}
}

func TestReadSignalAverages(t *testing.T) {
	adc := &fakeADC{raw: []int32{512}}
	r := NewReader(adc, quiet())
	sig, err := r.ReadSignal(context.Background(), 2*time.Millisecond)
	if err != nil {
		t.Fatalf("ReadSignal: %v", err)
	}
	if sig.Samples != adc.reads || sig.Samples < 1 {
		t.Fatalf("samples = %d, reads = %d", sig.Samples, adc.reads)
	}
	if sig.Raw != 512 || sig.V != 512*physic.MilliVolt {
		t.Fatalf("mean = %+v, want 512", sig)
	}
}

func TestReadSignalErrors(t *testing.T) {
	boom := errors.New("adc fault")
	r := NewReader(&fakeADC{err: boom}, quiet())
	if _, err := r.ReadSignal(context.Background(), time.Millisecond); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = NewReader(&fakeADC{raw: []int32{1}}, quiet())
	if _, err := r.ReadSignal(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSetter(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO5", Num: 5}
	s := NewSetter(p, quiet())
	if err := s.InitWith(true); err != nil {
		t.Fatalf("InitWith: %v", err)
	}
	if !s.IsHigh() || p.L != gpio.High {
		t.Fatalf("after InitWith(true): IsHigh=%v pin=%v", s.IsHigh(), p.L)
	}
	if err := s.TurnOff(); err != nil {
		t.Fatalf("TurnOff: %v", err)
	}
	if s.IsHigh() || p.L != gpio.Low {
		t.Fatalf("after TurnOff: IsHigh=%v pin=%v", s.IsHigh(), p.L)
	}
	if err := s.TurnOn(); err != nil {
		t.Fatalf("TurnOn: %v", err)
	}
	if !s.IsHigh() || p.L != gpio.High {
		t.Fatalf("after TurnOn: IsHigh=%v pin=%v", s.IsHigh(), p.L)
	}
}

func TestPWM(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO6", Num: 6, L: gpio.High}
	pwm := NewPWM(p, 490*physic.Hertz, quiet())
	if err := pwm.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if p.L != gpio.Low {
		t.Fatalf("Init left pin %v", p.L)
	}
	if err := pwm.Set(0.5); err != nil {
		t.Fatalf("Set(0.5): %v", err)
	}
	if p.D != gpio.DutyHalf || p.F != 490*physic.Hertz {
		t.Fatalf("Set(0.5): duty %v freq %v", p.D, p.F)
	}
	if err := pwm.Set(1.2); err != nil {
		t.Fatalf("Set(1.2): %v", err)
	}
	if p.L != gpio.High {
		t.Fatalf("Set(1.2) left pin %v", p.L)
	}
	if err := pwm.Set(-0.1); err != nil {
		t.Fatalf("Set(-0.1): %v", err)
	}
	if p.L != gpio.Low {
		t.Fatalf("Set(-0.1) left pin %v", p.L)
	}
}
