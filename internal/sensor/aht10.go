package sensor

import (
	"fmt"
	"time"

	"github.com/nerrad567/sensornode/internal/bus"
)

// AHT10 protocol constants (datasheet command sequences and status bits).
const (
	// DefaultAHT10Address is the sensor's fixed I2C address.
	DefaultAHT10Address = 0x38

	// aht10InitSettleDelay is the wait after the calibration command.
	aht10InitSettleDelay = 20 * time.Millisecond

	// aht10MeasureDelay is the conversion time for one measurement.
	// The datasheet specifies ~75ms; 80ms leaves a margin.
	aht10MeasureDelay = 80 * time.Millisecond

	// aht10StatusMask selects the busy (bit 7) and calibrated (bit 3)
	// flags from the status byte.
	aht10StatusMask = 0x88

	// aht10StatusReady is the only valid flag combination: busy clear,
	// calibrated set.
	aht10StatusReady = 0x08

	// aht10FrameLen is the status byte plus five data bytes.
	aht10FrameLen = 6

	// aht10Resolution is 2^20, the full scale of both 20-bit fields.
	aht10Resolution = 1048576.0
)

// aht10CmdInit is the calibration command sequence.
var aht10CmdInit = []byte{0xE1, 0x08, 0x00}

// aht10CmdMeasure triggers one measurement.
var aht10CmdMeasure = []byte{0xAC, 0x33, 0x00}

// AHT10 drives the temperature/humidity sensor over an I2C bus.
type AHT10 struct {
	bus  bus.Bus
	addr uint16

	// sleep is replaceable in tests to skip the conversion delays.
	sleep func(time.Duration)
}

// NewAHT10 creates a driver for an AHT10 at the given address.
func NewAHT10(b bus.Bus, addr uint16) *AHT10 {
	if addr == 0 {
		addr = DefaultAHT10Address
	}
	return &AHT10{
		bus:   b,
		addr:  addr,
		sleep: time.Sleep,
	}
}

// Init writes the calibration command sequence and waits for it to
// settle. A rejected write is a hard initialisation failure: the caller
// reports it, but the node still enters its operational loop.
func (s *AHT10) Init() error {
	if err := s.bus.Write(s.addr, aht10CmdInit); err != nil {
		return fmt.Errorf("%w: aht10 calibration: %w", ErrInitFailed, err)
	}
	s.sleep(aht10InitSettleDelay)

	return nil
}

// Read triggers a measurement and decodes the result.
//
// The sequence is: write the trigger command, wait the fixed conversion
// delay, read the 6-byte status+data frame. The frame is valid only when
// the status byte reports busy clear and calibrated set; anything else
// is ErrNotReady regardless of the trailing bytes.
//
// The two 20-bit raw fields are bit-packed big-endian across bytes 1-5:
// humidity occupies bytes 1-2 and the high nibble of byte 3, temperature
// the low nibble of byte 3 and bytes 4-5.
//
// Returns:
//   - Climate: Humidity in %RH (raw/2^20*100) and temperature in °C
//     (raw/2^20*200 - 50)
//   - error: ErrReadFailed or ErrNotReady; callers substitute defaults
func (s *AHT10) Read() (Climate, error) {
	if err := s.bus.Write(s.addr, aht10CmdMeasure); err != nil {
		return Climate{}, fmt.Errorf("%w: aht10 trigger: %w", ErrReadFailed, err)
	}

	s.sleep(aht10MeasureDelay)

	frame := make([]byte, aht10FrameLen)
	if err := s.bus.Read(s.addr, frame); err != nil {
		return Climate{}, fmt.Errorf("%w: aht10: %w", ErrReadFailed, err)
	}

	if frame[0]&aht10StatusMask != aht10StatusReady {
		return Climate{}, fmt.Errorf("%w: aht10 status %#02x", ErrNotReady, frame[0])
	}

	rawHumidity := uint32(frame[1])<<12 | uint32(frame[2])<<4 | uint32(frame[3])>>4
	rawTemp := uint32(frame[3]&0x0F)<<16 | uint32(frame[4])<<8 | uint32(frame[5])

	return Climate{
		Humidity:    float64(rawHumidity) / aht10Resolution * 100.0,
		Temperature: float64(rawTemp)/aht10Resolution*200.0 - 50.0,
	}, nil
}
