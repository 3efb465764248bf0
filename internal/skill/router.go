package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
)

// result is what a handler hands back to the router.
type result struct {
	resp *alexa.Response
	err  error
}

func reply(resp *alexa.Response) result { return result{resp: resp} }

// HandleJSON decodes body and handles the directive.
//
// Returns:
//   - *alexa.Response: The response to deliver
//   - error: alexa.ErrMalformedDirective or ErrUnrecognizedNamespace
//     (wrapped); no response is produced in that case
func (s *Service) HandleJSON(ctx context.Context, body []byte) (*alexa.Response, error) {
	req, err := alexa.Decode(body)
	if err != nil {
		return nil, err
	}
	return s.Handle(ctx, req)
}

// Handle processes one directive.
//
// Parameters:
//   - ctx: Context for cancellation of controller calls
//   - req: The decoded directive
//
// Returns:
//   - *alexa.Response: Exactly one response, possibly a normalized error
//   - error: ErrUnrecognizedNamespace (wrapped) when no handler serves the
//     namespace; the response is nil in that case
func (s *Service) Handle(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	start := time.Now()
	d := &req.Directive
	op := d.Operation()

	var res result
	switch op := op.(type) {
	case alexa.UnknownNamespace:
		s.logWarn("directive namespace not served",
			"namespace", op.Namespace,
			"name", op.Name,
		)
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedNamespace, op.Namespace)
	case alexa.Discover:
		res = s.discover(ctx, op)
	case alexa.ReportState:
		res = s.query(ctx, op)
	case alexa.UnsupportedDirective:
		res = s.unsupported(ctx, op)
	default:
		res = s.control(ctx, op)
	}

	endpointID := ""
	if d.Endpoint != nil {
		endpointID = d.Endpoint.EndpointID
	}

	elapsed := time.Since(start)
	s.logInfo("directive handled",
		"namespace", d.Header.Namespace,
		"name", d.Header.Name,
		"endpoint_id", endpointID,
		"response", res.resp.Name(),
		"duration", elapsed,
	)

	s.notify(ctx, Outcome{
		Namespace:  d.Header.Namespace,
		Name:       d.Header.Name,
		EndpointID: endpointID,
		Response:   res.resp,
		Err:        res.err,
		Duration:   elapsed,
	})

	return res.resp, nil
}

// authorize validates a bearer token. It returns an error response, or nil
// if the token is acceptable.
func (s *Service) authorize(ctx context.Context, token string) *alexa.Response {
	if token == "" {
		s.logWarn("directive rejected: no access token")
		return alexa.NewErrorResponse(alexa.ErrorInvalidAccessToken, nil)
	}
	if err := s.tokens.Validate(ctx, token); err != nil {
		s.logWarn("directive rejected: invalid access token",
			"token", logging.Redact(token),
			"error", err,
		)
		return alexa.NewErrorResponse(alexa.ErrorInvalidAccessToken, nil)
	}
	return nil
}

// checkTarget runs the checks shared by control and query directives:
// token, endpoint ID, reachability.
func (s *Service) checkTarget(ctx context.Context, t alexa.Target) *alexa.Response {
	if resp := s.authorize(ctx, t.Token); resp != nil {
		return resp
	}
	if t.EndpointIDInvalid {
		s.logWarn("directive rejected: unusable endpoint id")
		return alexa.NewUnexpectedInformation("applianceId", invalidValue)
	}
	if t.EndpointID == "" {
		s.logWarn("directive rejected: no endpoint id")
		return alexa.NewUnexpectedInformation("applianceId", missingValue)
	}
	if !s.reach.Reachable(ctx, t.EndpointID) {
		s.logWarn("directive rejected: endpoint offline", "endpoint_id", t.EndpointID)
		return alexa.NewErrorResponse(alexa.ErrorTargetOffline, nil)
	}
	return nil
}

// unsupported answers a directive name the bridge does not implement,
// after the usual target checks.
func (s *Service) unsupported(ctx context.Context, op alexa.UnsupportedDirective) result {
	if resp := s.checkTarget(ctx, op.Target); resp != nil {
		return reply(resp)
	}
	s.logWarn("directive name not supported",
		"namespace", op.Namespace,
		"name", op.Name,
	)
	return reply(alexa.NewErrorResponse(alexa.ErrorUnsupportedOperation, nil))
}

// controllerFailure logs err and returns the normalized response for a
// failed controller exchange.
func (s *Service) controllerFailure(step string, endpointID string, err error) result {
	s.logError("controller exchange failed",
		"step", step,
		"endpoint_id", endpointID,
		"error", err,
	)
	return result{
		resp: alexa.NewDependentServiceUnavailable(DependentServiceName),
		err:  err,
	}
}
