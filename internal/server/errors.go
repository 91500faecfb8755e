package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/usecase"
)

type errorBody struct {
	Error   string      `json:"error"`
	Matches []stationJS `json:"matches,omitempty"`
}

func statusFor(err error) int {
	var re *usecase.ResolveError
	if errors.As(err, &re) {
		return http.StatusBadRequest
	}

	switch {
	case domain.IsKind(err, domain.KindInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.KindNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.KindUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorBody{Error: publicMessage(err, status)}

	var re *usecase.ResolveError
	if errors.As(err, &re) && re.Lookup.Kind == domain.MatchAmbiguous {
		body.Matches = stationsJS(re.Lookup.Candidates)
	}

	if status >= http.StatusInternalServerError {
		s.log.Warn("http.handler_failed",
			"request_id", c.GetString(requestIDKey),
			"route", routeOf(c),
			"status", status,
			"err", err,
		)
	}
	c.AbortWithStatusJSON(status, body)
}

func publicMessage(err error, status int) string {
	switch status {
	case http.StatusBadGateway:
		return "upstream request failed"
	case http.StatusInternalServerError:
		return "internal error"
	case http.StatusNotFound:
		return "no prices found"
	}
	return err.Error()
}
