package sensor

import (
	"errors"
	"time"
)

// fakeBus is an in-memory bus.Bus. Writes are recorded; reads are served
// from a queue of canned frames or errors.
type fakeBus struct {
	writes   [][]byte
	writeErr error

	reads   [][]byte
	readErr error
}

func (b *fakeBus) Write(_ uint16, p []byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	b.writes = append(b.writes, cp)
	return nil
}

func (b *fakeBus) Read(_ uint16, p []byte) error {
	if b.readErr != nil {
		return b.readErr
	}
	if len(b.reads) == 0 {
		return errors.New("fakebus: no frame queued")
	}
	frame := b.reads[0]
	b.reads = b.reads[1:]
	copy(p, frame)
	return nil
}

// noSleep replaces the drivers' settling delays in tests.
func noSleep(time.Duration) {}

var errNack = errors.New("i2c: NACK")
