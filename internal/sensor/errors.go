package sensor

import "errors"

// Domain-specific errors for sensor operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInitFailed is returned when a sensor rejects its initialisation
	// command sequence (typically a NACK on the bus).
	ErrInitFailed = errors.New("sensor: initialisation failed")

	// ErrReadFailed is returned when a bus transfer during a measurement
	// fails or returns fewer bytes than the frame requires.
	ErrReadFailed = errors.New("sensor: read failed")

	// ErrNotReady is returned when the AHT10 status byte reports the
	// device busy or uncalibrated; the data bytes are not valid.
	ErrNotReady = errors.New("sensor: measurement not ready")
)
