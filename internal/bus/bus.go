package bus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Bus is the synchronous transfer contract the sensor drivers consume.
//
// Write sends p to the device at addr. Read fills p from the device at
// addr. Both return an error on NACK, arbitration loss or a short
// transfer; a nil error means the full buffer was transferred.
type Bus interface {
	Write(addr uint16, p []byte) error
	Read(addr uint16, p []byte) error
}

// ErrOpenFailed is returned when the I2C controller cannot be opened.
var ErrOpenFailed = errors.New("bus: open failed")

// I2C is a Bus backed by a periph.io I2C bus.
//
// The bus is exclusively owned by the acquisition layer for the duration
// of a transfer; periph serialises transfers internally, so a single I2C
// value may carry multiple device drivers.
type I2C struct {
	bus i2c.BusCloser
}

// Open initialises the host drivers and opens the named I2C bus.
//
// Parameters:
//   - name: Bus name or number (e.g. "1", "/dev/i2c-1"); empty selects
//     the platform default bus.
//
// Returns:
//   - *I2C: Open bus ready for transfers
//   - error: ErrOpenFailed if host init or bus open fails
func Open(name string) (*I2C, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init: %w", ErrOpenFailed, err)
	}

	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return &I2C{bus: b}, nil
}

// Write sends p to the device at addr.
func (b *I2C) Write(addr uint16, p []byte) error {
	return b.bus.Tx(addr, p, nil)
}

// Read fills p from the device at addr.
func (b *I2C) Read(addr uint16, p []byte) error {
	return b.bus.Tx(addr, nil, p)
}

// Close releases the underlying bus handle.
func (b *I2C) Close() error {
	return b.bus.Close()
}
