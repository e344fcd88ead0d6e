// Package sensor implements the drivers for the node's two peripherals:
// the BH1750 ambient light sensor and the AHT10 temperature/humidity
// sensor. Both run over the shared bus abstraction in internal/bus and
// fail independently.
//
// # Failure policy
//
// A failed read never aborts the operational cycle. Drivers return an
// explicit error; callers substitute a default value so the published
// payload stays structurally complete (see internal/telemetry).
// Initialisation failures are reported once at startup and do not stop
// the node from entering its loop - a sensor that recovers later simply
// starts producing valid readings again.
//
// # Timing
//
// Reads are blocking: each driver issues its bus transfers with the
// fixed settling and conversion delays the datasheets require (10ms
// after each BH1750 command, 20ms after AHT10 calibration, 80ms per
// AHT10 measurement). The telemetry loop period must comfortably exceed
// the sum of these delays.
package sensor
