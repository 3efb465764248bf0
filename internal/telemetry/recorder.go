package telemetry

import (
	"context"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// ReadingWriter accepts readings. *influxdb.Client implements it.
type ReadingWriter interface {
	WriteReading(r influxdb.Reading)
}

// Recorder writes the readings of every outcome to a ReadingWriter.
type Recorder struct {
	writer ReadingWriter
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w ReadingWriter) *Recorder {
	return &Recorder{writer: w}
}

// Observe implements skill.Observer.
func (r *Recorder) Observe(_ context.Context, o skill.Outcome) {
	for _, reading := range Readings(o) {
		r.writer.WriteReading(reading)
	}
}

// Readings converts the context of o into readings, in context order.
// Properties whose values are neither numbers, strings nor temperatures
// are skipped.
func Readings(o skill.Outcome) []influxdb.Reading {
	if o.Response == nil || o.Response.Context == nil {
		return nil
	}

	props := o.Response.Context.Properties
	out := make([]influxdb.Reading, 0, len(props))
	for _, p := range props {
		reading := influxdb.Reading{
			EndpointID: o.EndpointID,
			Namespace:  p.Namespace,
			Name:       p.Name,
			Time:       p.TimeOfSample,
		}
		switch v := p.Value.(type) {
		case float64:
			reading.Value = &v
		case int:
			f := float64(v)
			reading.Value = &f
		case alexa.Temperature:
			reading.Value = &v.Value
			reading.Scale = v.Scale
		case string:
			reading.State = v
		default:
			continue
		}
		out = append(out, reading)
	}
	return out
}
