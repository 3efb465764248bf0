package skill

import (
	"context"
	"fmt"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

// query answers ReportState by classifying the object and reading its
// state. HVAC objects carry their state in the classification reply, so
// they cost one controller call; dimmers and sensors cost two.
func (s *Service) query(ctx context.Context, op alexa.ReportState) result {
	target := op.Target
	if resp := s.checkTarget(ctx, target); resp != nil {
		return reply(resp)
	}
	id := target.EndpointID

	body, err := s.controller.Send(ctx, cortex.DescribeObject(id))
	if err != nil {
		return s.controllerFailure("describe object", id, err)
	}
	obj, err := cortex.ParseObject(body)
	if err != nil {
		return s.controllerFailure("describe object", id, err)
	}

	var readings *alexa.Context
	switch obj.Type {
	case cortex.TypeDimmer:
		readings, err = s.readPort(ctx, id, cortex.PortDimmerState, cortex.TranslateDimmer)
	case cortex.TypeTemperature:
		readings, err = s.readPort(ctx, id, cortex.PortTemperature, cortex.TranslateTemperature)
	case cortex.TypeHVAC:
		readings, err = cortex.ThermostatContext(obj.ReportString)
	default:
		s.logWarn("state requested for unsupported object type",
			"endpoint_id", id,
			"type", string(obj.Type),
		)
		return result{
			resp: alexa.NewErrorResponse(alexa.ErrorUnsupportedTarget, nil),
			err:  fmt.Errorf("%w: %q", cortex.ErrUnknownObjectType, obj.Type),
		}
	}
	if err != nil {
		return s.controllerFailure("read state", id, err)
	}

	return reply(alexa.NewEventResponse(alexa.NameStateReport, target, readings))
}

// readPort fetches one port and runs translate over the reply.
func (s *Service) readPort(ctx context.Context, id string, port int, translate func(string) (*alexa.Context, error)) (*alexa.Context, error) {
	body, err := s.controller.Send(ctx, cortex.ReadPort(id, port))
	if err != nil {
		return nil, err
	}
	return translate(body)
}
