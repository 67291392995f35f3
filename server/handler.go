package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"vgshop/listingresolver/internal/resolver"
	"vgshop/listingresolver/pkg/errors"
)

// ResolveRequest is the body of POST /api/v1/resolve
type ResolveRequest struct {
	URL string `json:"url" validate:"required"`
}

// ErrorResponse is the body returned for rejected resolutions
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// resolveHandler resolves a raw storefront identifier into a listing
func (s *Server) resolveHandler(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url is required"})
	}

	outcome, err := s.resolver.Resolve(c.Request().Context(), req.URL)
	if err != nil {
		return c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
	}

	s.publishOutcome(outcome)

	return c.JSON(http.StatusOK, outcome.Listing)
}

// publishOutcome sends the resolution event to the telemetry stream and
// trims the stream back to its configured cap. Publish failures are logged,
// never surfaced to the caller.
func (s *Server) publishOutcome(outcome *resolver.Outcome) {
	data, err := json.Marshal(outcome)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode resolution event")
		return
	}
	if err := s.pub.Publish(string(outcome.Listing.Platform), data); err != nil {
		s.log.Error().Err(err).Msg("Failed to publish resolution event")
		return
	}
	if err := s.pub.TrimStreams(); err != nil {
		s.log.Error().Err(err).Msg("Failed to trim telemetry stream")
	}
}

// statusForError maps resolution error kinds to HTTP status codes
func statusForError(err error) int {
	switch errors.KindOf(err) {
	case errors.KindUnsupportedStore, errors.KindIdentifierNotFound:
		return http.StatusBadRequest
	case errors.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
