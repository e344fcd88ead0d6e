// Package bus provides the I2C bus abstraction the sensor drivers run on.
//
// The Bus interface is the synchronous write/read contract consumed by
// the drivers in internal/sensor: a failed or short transfer surfaces as
// an error, never as a panic. The production implementation wraps a
// periph.io I2C bus; tests substitute in-memory fakes.
//
// # Usage
//
//	b, err := bus.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	light := sensor.NewBH1750(b, 0x23)
package bus
