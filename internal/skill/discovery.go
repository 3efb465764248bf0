package skill

import (
	"context"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

// discover lists the controller inventory and describes every supported
// object. An inventory with no supported objects is an empty list.
func (s *Service) discover(ctx context.Context, op alexa.Discover) result {
	if resp := s.authorize(ctx, op.Token); resp != nil {
		return reply(resp)
	}

	body, err := s.controller.Send(ctx, cortex.ListObjects())
	if err != nil {
		return s.controllerFailure("list objects", "", err)
	}

	objects, err := cortex.ParseObjectList(body)
	if err != nil {
		return s.controllerFailure("list objects", "", err)
	}

	endpoints := cortex.MapInventory(objects)
	s.logDebug("discovery complete",
		"objects", len(objects),
		"endpoints", len(endpoints),
	)

	return reply(alexa.NewDiscoveryResponse(endpoints))
}
