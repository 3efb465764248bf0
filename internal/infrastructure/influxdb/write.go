package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by the bridge.
const (
	// MeasurementProperty holds numeric property readings (brightness,
	// setpoints, temperatures).
	MeasurementProperty = "property_readings"

	// MeasurementState holds enumerated readings (power state, thermostat
	// mode).
	MeasurementState = "property_states"
)

// Reading is one property value reported for an endpoint.
type Reading struct {
	EndpointID string
	Namespace  string
	Name       string

	// Value is set for numeric readings; State for enumerated ones.
	Value *float64
	State string

	// Scale is the temperature scale, empty for non-temperatures.
	Scale string

	Time time.Time
}

// WriteReading writes one property reading.
//
// Numeric readings go to MeasurementProperty with a "value" field,
// enumerated readings to MeasurementState with a "state" field.
// Readings with neither are dropped. The write is non-blocking.
//
// Example:
//
//	v := 21.5
//	client.WriteReading(influxdb.Reading{
//	    EndpointID: "42", Namespace: "Alexa.TemperatureSensor",
//	    Name: "temperature", Value: &v, Scale: "CELSIUS", Time: time.Now(),
//	})
func (c *Client) WriteReading(r Reading) {
	if !c.IsConnected() {
		return
	}
	if p := readingPoint(r); p != nil {
		c.writeAPI.WritePoint(p)
	}
}

func readingPoint(r Reading) *write.Point {
	tags := map[string]string{
		"endpoint_id": r.EndpointID,
		"namespace":   r.Namespace,
		"property":    r.Name,
	}
	if r.Scale != "" {
		tags["scale"] = r.Scale
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	switch {
	case r.Value != nil:
		return write.NewPoint(MeasurementProperty, tags, map[string]interface{}{"value": *r.Value}, ts)
	case r.State != "":
		return write.NewPoint(MeasurementState, tags, map[string]interface{}{"state": r.State}, ts)
	default:
		return nil
	}
}

// WritePoint writes a custom point timestamped now.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes a custom point with a specific timestamp.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
