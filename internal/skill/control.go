package skill

import (
	"context"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

// Stand-ins for a payload field that cannot be described by its value in
// a faulting parameter description.
const (
	missingValue = "missing"
	invalidValue = "invalid"
)

// controlPlan is what one control directive does: an optional preparatory
// command, the command itself, and the reading to report on success.
type controlPlan struct {
	prepare *cortex.Command
	command cortex.Command

	namespace string
	property  string
	value     any
}

// control runs TurnOn, TurnOff, SetBrightness, SetTargetTemperature and
// AdjustTargetTemperature.
func (s *Service) control(ctx context.Context, op alexa.Operation) result {
	target, ok := targetOf(op)
	if !ok {
		return reply(alexa.NewErrorResponse(alexa.ErrorUnsupportedOperation, nil))
	}
	if resp := s.checkTarget(ctx, target); resp != nil {
		return reply(resp)
	}

	plan, resp := planControl(op)
	if resp != nil {
		s.logWarn("control directive rejected",
			"endpoint_id", target.EndpointID,
			"reason", resp.Name(),
		)
		return reply(resp)
	}

	if plan.prepare != nil {
		// A failed power-on is not fatal; the level command may still
		// switch the dimmer on.
		if _, err := s.controller.Send(ctx, *plan.prepare); err != nil {
			s.logWarn("power-on before brightness failed",
				"endpoint_id", target.EndpointID,
				"error", err,
			)
		}
	}

	if _, err := s.controller.Send(ctx, plan.command); err != nil {
		return s.controllerFailure(plan.command.String(), target.EndpointID, err)
	}

	readings := alexa.NewContext(alexa.NewProperty(plan.namespace, plan.property, plan.value))
	return reply(alexa.NewEventResponse(alexa.NameResponse, target, readings))
}

// planControl maps a control operation to controller commands. It returns
// an error response if a required payload value is absent, zero or of the
// wrong type.
func planControl(op alexa.Operation) (controlPlan, *alexa.Response) {
	switch op := op.(type) {
	case alexa.TurnOn:
		return controlPlan{
			command:   cortex.TurnOn(op.EndpointID),
			namespace: alexa.NamespacePower,
			property:  alexa.PropertyPowerState,
			value:     alexa.PowerOn,
		}, nil

	case alexa.TurnOff:
		return controlPlan{
			command:   cortex.TurnOff(op.EndpointID),
			namespace: alexa.NamespacePower,
			property:  alexa.PropertyPowerState,
			value:     alexa.PowerOff,
		}, nil

	case alexa.SetBrightness:
		if op.Invalid {
			return controlPlan{}, alexa.NewUnexpectedInformation("percentageState", invalidValue)
		}
		if op.Brightness == nil || *op.Brightness == 0 {
			return controlPlan{}, alexa.NewUnexpectedInformation("percentageState", describe(op.Brightness))
		}
		level := *op.Brightness
		plan := controlPlan{
			command:   cortex.SetBrightness(op.EndpointID, level),
			namespace: alexa.NamespaceBrightness,
			property:  alexa.PropertyBrightness,
			value:     level,
		}
		if level > 0 {
			on := cortex.TurnOn(op.EndpointID)
			plan.prepare = &on
		}
		return plan, nil

	case alexa.SetTargetTemperature:
		if op.Invalid {
			return controlPlan{}, alexa.NewUnexpectedInformation("targetSetpoint", invalidValue)
		}
		if op.Setpoint == nil || op.Setpoint.Value == 0 {
			return controlPlan{}, alexa.NewUnexpectedInformation("targetSetpoint", describeTemperature(op.Setpoint))
		}
		return controlPlan{
			command:   cortex.SetSetpoint(op.EndpointID, op.Setpoint.Value),
			namespace: alexa.NamespaceThermostat,
			property:  alexa.PropertyTargetSetpoint,
			value:     alexa.Celsius(op.Setpoint.Value),
		}, nil

	case alexa.AdjustTargetTemperature:
		if op.Invalid {
			return controlPlan{}, alexa.NewUnexpectedInformation("targetSetpointDelta", invalidValue)
		}
		if op.Delta == nil || op.Delta.Value == 0 {
			return controlPlan{}, alexa.NewUnexpectedInformation("targetSetpointDelta", describeTemperature(op.Delta))
		}
		return controlPlan{
			command:   cortex.AdjustSetpoint(op.EndpointID, op.Delta.Value),
			namespace: alexa.NamespaceThermostat,
			property:  alexa.PropertyTargetSetpointDelta,
			value:     alexa.Celsius(op.Delta.Value),
		}, nil
	}

	return controlPlan{}, alexa.NewErrorResponse(alexa.ErrorUnsupportedOperation, nil)
}

// targetOf extracts the addressed endpoint from a control operation.
func targetOf(op alexa.Operation) (alexa.Target, bool) {
	switch op := op.(type) {
	case alexa.TurnOn:
		return op.Target, true
	case alexa.TurnOff:
		return op.Target, true
	case alexa.SetBrightness:
		return op.Target, true
	case alexa.SetTargetTemperature:
		return op.Target, true
	case alexa.AdjustTargetTemperature:
		return op.Target, true
	}
	return alexa.Target{}, false
}

func describe(v *float64) string {
	if v == nil {
		return missingValue
	}
	return cortex.FormatValue(*v)
}

func describeTemperature(t *alexa.Temperature) string {
	if t == nil {
		return missingValue
	}
	return cortex.FormatValue(t.Value)
}
