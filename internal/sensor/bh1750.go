package sensor

import (
	"fmt"
	"time"

	"github.com/nerrad567/sensornode/internal/bus"
)

// BH1750 protocol constants (datasheet opcodes and scaling).
const (
	// DefaultBH1750Address is the sensor's I2C address with ADDR low.
	DefaultBH1750Address = 0x23

	// bh1750CmdPowerOn wakes the sensor from its low-power state.
	bh1750CmdPowerOn = 0x01

	// bh1750CmdContinuousHighRes selects continuous 1lx-resolution
	// measurement; the sensor then refreshes its register every ~120ms
	// and reads need no per-measurement trigger.
	bh1750CmdContinuousHighRes = 0x10

	// bh1750SettleDelay is the wait after each command byte.
	bh1750SettleDelay = 10 * time.Millisecond

	// bh1750Scale converts the raw 16-bit count to lux in high
	// resolution mode.
	bh1750Scale = 1.2
)

// BH1750 drives the ambient light sensor over an I2C bus.
type BH1750 struct {
	bus  bus.Bus
	addr uint16

	// sleep is replaceable in tests to skip the settling delays.
	sleep func(time.Duration)
}

// NewBH1750 creates a driver for a BH1750 at the given address.
func NewBH1750(b bus.Bus, addr uint16) *BH1750 {
	if addr == 0 {
		addr = DefaultBH1750Address
	}
	return &BH1750{
		bus:   b,
		addr:  addr,
		sleep: time.Sleep,
	}
}

// Init powers the sensor on and puts it into continuous high resolution
// mode. Each command carries a fixed settling delay.
//
// Returns:
//   - error: ErrInitFailed if either command is rejected on the bus
func (s *BH1750) Init() error {
	if err := s.bus.Write(s.addr, []byte{bh1750CmdPowerOn}); err != nil {
		return fmt.Errorf("%w: bh1750 power on: %w", ErrInitFailed, err)
	}
	s.sleep(bh1750SettleDelay)

	if err := s.bus.Write(s.addr, []byte{bh1750CmdContinuousHighRes}); err != nil {
		return fmt.Errorf("%w: bh1750 set mode: %w", ErrInitFailed, err)
	}
	s.sleep(bh1750SettleDelay)

	return nil
}

// ReadLux returns the current illuminance in lux.
//
// The sensor runs in continuous mode, so a read is a single 2-byte
// transfer of the latest measurement: big-endian raw count divided by
// the datasheet scale factor.
//
// Returns:
//   - float64: Illuminance in lux
//   - error: ErrReadFailed if the transfer fails; callers substitute a
//     default value and continue the cycle
func (s *BH1750) ReadLux() (float64, error) {
	raw := make([]byte, 2)
	if err := s.bus.Read(s.addr, raw); err != nil {
		return 0, fmt.Errorf("%w: bh1750: %w", ErrReadFailed, err)
	}

	value := uint16(raw[0])<<8 | uint16(raw[1])
	return float64(value) / bh1750Scale, nil
}
