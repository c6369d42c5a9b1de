/*
Copyright 2024 Tim St. Pierre
Cell sensing and switching pins: analog reader, digital setter, PWM setter
*/
package pins

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ADC is the part of analog.PinADC a Reader uses.
type ADC interface {
	fmt.Stringer
	Read() (analog.Sample, error)
}

// Output is a digital output pin.
type Output interface {
	fmt.Stringer
	Out(l gpio.Level) error
}

// PWMOutput is a digital output pin that can also generate PWM.
type PWMOutput interface {
	Output
	PWM(duty gpio.Duty, f physic.Frequency) error
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}

// Signal is the mean of the samples taken by ReadSignal.
type Signal struct {
	Raw     float64
	V       physic.ElectricPotential
	Samples int
}

type Reader struct {
	pin ADC
	log logrus.FieldLogger
}

func NewReader(pin ADC, log logrus.FieldLogger) *Reader {
	return &Reader{pin: pin, log: logger(log)}
}

func (r *Reader) ReadOnce() (analog.Sample, error) {
	s, err := r.pin.Read()
	if err != nil {
		return s, fmt.Errorf("pins %s: %w", r.pin, err)
	}
	return s, nil
}

// ReadSignal samples the pin back to back for d and returns the mean. At
// least one sample is always taken.
func (r *Reader) ReadSignal(ctx context.Context, d time.Duration) (Signal, error) {
	var sumRaw int64
	var sumV physic.ElectricPotential
	n := 0
	for start := time.Now(); n == 0 || time.Since(start) < d; n++ {
		if err := ctx.Err(); err != nil {
			return Signal{}, err
		}
		s, err := r.ReadOnce()
		if err != nil {
			return Signal{}, err
		}
		sumRaw += int64(s.Raw)
		sumV += s.V
	}
	sig := Signal{
		Raw:     float64(sumRaw) / float64(n),
		V:       sumV / physic.ElectricPotential(n),
		Samples: n,
	}
	r.log.WithFields(logrus.Fields{"pin": r.pin.String(), "samples": n}).Debugf("pins: mean %s", sig.V)
	return sig, nil
}

// Setter drives a digital output and remembers its level.
type Setter struct {
	pin  Output
	high bool
	log  logrus.FieldLogger
}

func NewSetter(pin Output, log logrus.FieldLogger) *Setter {
	return &Setter{pin: pin, log: logger(log)}
}

func (s *Setter) InitWith(high bool) error {
	s.high = high
	s.log.Infof("The pin %s is initialized to %s.", s.pin, level(high))
	return s.sync()
}

func (s *Setter) TurnOn() error {
	s.high = true
	s.log.Infof("The pin %s set to be HIGH.", s.pin)
	return s.sync()
}

func (s *Setter) TurnOff() error {
	s.high = false
	s.log.Infof("The pin %s set to be LOW.", s.pin)
	return s.sync()
}

func (s *Setter) IsHigh() bool {
	return s.high
}

func (s *Setter) sync() error {
	if err := s.pin.Out(gpio.Level(s.high)); err != nil {
		return fmt.Errorf("pins %s: %w", s.pin, err)
	}
	return nil
}

// PWM drives a pin with a duty ratio at a fixed frequency.
type PWM struct {
	pin  PWMOutput
	freq physic.Frequency
	log  logrus.FieldLogger
}

func NewPWM(pin PWMOutput, freq physic.Frequency, log logrus.FieldLogger) *PWM {
	return &PWM{pin: pin, freq: freq, log: logger(log)}
}

// Init drives the pin low.
func (p *PWM) Init() error {
	p.log.Infof("The pin %s is initialized to LOW.", p.pin)
	return p.out(gpio.Low)
}

// Set drives the pin low for a negative ratio, high for a ratio of 1 or
// more, and with a PWM duty of ratio in between.
func (p *PWM) Set(ratio float64) error {
	switch {
	case ratio < 0:
		p.log.Infof("The pin %s set to be LOW.", p.pin)
		return p.out(gpio.Low)
	case ratio >= 1:
		p.log.Infof("The pin %s set to be HIGH.", p.pin)
		return p.out(gpio.High)
	}
	duty := gpio.Duty(ratio * float64(gpio.DutyMax))
	p.log.Infof("The pin %s set to be %s.", p.pin, duty)
	if err := p.pin.PWM(duty, p.freq); err != nil {
		return fmt.Errorf("pins %s: %w", p.pin, err)
	}
	return nil
}

func (p *PWM) out(l gpio.Level) error {
	if err := p.pin.Out(l); err != nil {
		return fmt.Errorf("pins %s: %w", p.pin, err)
	}
	return nil
}

func level(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
