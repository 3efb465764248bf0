// Package telemetry turns the property readings in handled directives into
// InfluxDB points.
//
// A Recorder is registered as a skill.Observer. Each state report or
// control confirmation contributes one point per property in its context.
// Discovery results and error responses carry no context and are skipped.
package telemetry
