package sensor

// Reading is a single measured quantity.
//
// Invalid readings carry Value 0 and are substituted downstream rather
// than aborting the cycle; the payload schema is fixed and must always
// be well-formed.
type Reading struct {
	Value float64
	Valid bool
}

// Invalid returns the reading used in place of a failed measurement.
func Invalid() Reading {
	return Reading{}
}

// Climate is one AHT10 measurement: relative humidity in percent and
// temperature in degrees Celsius.
type Climate struct {
	Temperature float64
	Humidity    float64
}
