package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// handleDirective runs one directive through the skill service.
//
// Every routed directive gets 200 with the response, normalized errors
// included. Malformed JSON and unrecognized namespaces get 400.
func (s *Server) handleDirective(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, ErrCodeBadRequest, "reading request body: "+err.Error())
		return
	}

	resp, err := s.handler.HandleJSON(r.Context(), body)
	if err != nil {
		s.metrics.recordRejected()
		s.logger.Warn("directive rejected",
			"error", err,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		switch {
		case errors.Is(err, alexa.ErrMalformedDirective):
			writeBadRequest(w, ErrCodeMalformedDirective, err.Error())
		case errors.Is(err, skill.ErrUnrecognizedNamespace):
			writeBadRequest(w, ErrCodeUnrecognizedNamespace, err.Error())
		default:
			writeBadRequest(w, ErrCodeBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
