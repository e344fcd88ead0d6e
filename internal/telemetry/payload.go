package telemetry

import (
	"fmt"

	"github.com/nerrad567/sensornode/internal/sensor"
)

// Payload is the consolidated telemetry message for one cycle.
//
// Field presence is unconditional: a failed reading is carried as its
// default value, never omitted, so consumers always see the same schema.
type Payload struct {
	Temperature float64
	Humidity    float64
	Illuminance float64
}

// Assemble builds a Payload from the cycle's readings.
//
// Pure transformation: no I/O, deterministic, cannot fail. Invalid
// readings are already resolved to the 0.0 default here so encoding
// never has to deal with absence.
func Assemble(temperature, humidity, illuminance sensor.Reading) Payload {
	var p Payload
	if temperature.Valid {
		p.Temperature = temperature.Value
	}
	if humidity.Valid {
		p.Humidity = humidity.Value
	}
	if illuminance.Valid {
		p.Illuminance = illuminance.Value
	}
	return p
}

// Encode serialises the payload to its wire format.
//
// The format is fixed for compatibility with existing consumers of the
// "dados/json" channel: three named numeric fields, two decimal places,
// in this exact key order and spacing:
//
//	{"temperatura":21.50, "umidade":40.00, "luminosidade":333.33}
func (p Payload) Encode() []byte {
	return fmt.Appendf(nil,
		`{"temperatura":%.2f, "umidade":%.2f, "luminosidade":%.2f}`,
		p.Temperature, p.Humidity, p.Illuminance,
	)
}
