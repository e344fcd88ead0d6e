package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/nerrad567/sensornode/internal/sensor"
)

func valid(v float64) sensor.Reading {
	return sensor.Reading{Value: v, Valid: true}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name           string
		temp, hum, lux sensor.Reading
		wantTemp       float64
		wantHum        float64
		wantLux        float64
	}{
		{
			name: "all valid",
			temp: valid(21.5), hum: valid(40.0), lux: valid(333.33),
			wantTemp: 21.5, wantHum: 40.0, wantLux: 333.33,
		},
		{
			name: "all invalid",
			temp: sensor.Invalid(), hum: sensor.Invalid(), lux: sensor.Invalid(),
			wantTemp: 0, wantHum: 0, wantLux: 0,
		},
		{
			name: "climate failed, light valid",
			temp: sensor.Invalid(), hum: sensor.Invalid(), lux: valid(120.0),
			wantTemp: 0, wantHum: 0, wantLux: 120.0,
		},
		{
			name: "invalid value is ignored even when set",
			temp: sensor.Reading{Value: 99.9, Valid: false}, hum: valid(50), lux: valid(1),
			wantTemp: 0, wantHum: 50, wantLux: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Assemble(tt.temp, tt.hum, tt.lux)
			if p.Temperature != tt.wantTemp {
				t.Errorf("Temperature = %v, want %v", p.Temperature, tt.wantTemp)
			}
			if p.Humidity != tt.wantHum {
				t.Errorf("Humidity = %v, want %v", p.Humidity, tt.wantHum)
			}
			if p.Illuminance != tt.wantLux {
				t.Errorf("Illuminance = %v, want %v", p.Illuminance, tt.wantLux)
			}
		})
	}
}

func TestPayloadEncode(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{
			name:    "typical readings",
			payload: Payload{Temperature: 21.5, Humidity: 40, Illuminance: 333.3333},
			want:    `{"temperatura":21.50, "umidade":40.00, "luminosidade":333.33}`,
		},
		{
			name:    "all defaults",
			payload: Payload{},
			want:    `{"temperatura":0.00, "umidade":0.00, "luminosidade":0.00}`,
		},
		{
			name:    "negative temperature",
			payload: Payload{Temperature: -19.97, Humidity: 10, Illuminance: 0},
			want:    `{"temperatura":-19.97, "umidade":10.00, "luminosidade":0.00}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tt.payload.Encode())
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestPayloadEncodeAlwaysWellFormed verifies the schema holds for any
// combination of failed readings: exactly three numeric fields, valid JSON.
func TestPayloadEncodeAlwaysWellFormed(t *testing.T) {
	readings := []sensor.Reading{sensor.Invalid(), valid(-50), valid(0), valid(100000)}

	for _, temp := range readings {
		for _, hum := range readings {
			for _, lux := range readings {
				data := Assemble(temp, hum, lux).Encode()

				var decoded map[string]float64
				if err := json.Unmarshal(data, &decoded); err != nil {
					t.Fatalf("Encode() produced malformed JSON %s: %v", data, err)
				}
				if len(decoded) != 3 {
					t.Fatalf("Encode() produced %d fields, want 3: %s", len(decoded), data)
				}
				for _, key := range []string{"temperatura", "umidade", "luminosidade"} {
					if _, ok := decoded[key]; !ok {
						t.Fatalf("Encode() missing field %q: %s", key, data)
					}
				}
			}
		}
	}
}
