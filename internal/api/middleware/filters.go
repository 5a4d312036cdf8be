package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/review-agent/internal/metrics"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID    = "X-Request-ID"
	AttributeRequestID = "requestID"
)

// RequestID keeps a valid incoming X-Request-ID or assigns a new one.
func RequestID(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	requestID := req.HeaderParameter(HeaderRequestID)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.New().String()
	}

	req.SetAttribute(AttributeRequestID, requestID)
	resp.AddHeader(HeaderRequestID, requestID)

	chain.ProcessFilter(req, resp)
}

// RequestIDFrom returns the id assigned by RequestID, or "" when the filter did not run.
func RequestIDFrom(req *restful.Request) string {
	id, _ := req.Attribute(AttributeRequestID).(string)
	return id
}

func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()

		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("requestID", RequestIDFrom(req)).
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}

func Metrics(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	done := metrics.TrackInFlight()
	defer done()

	chain.ProcessFilter(req, resp)

	path := req.SelectedRoutePath()
	if path == "" {
		path = "unmatched"
	}
	metrics.ObserveHTTPRequest(req.Request.Method, path, strconv.Itoa(resp.StatusCode()), time.Since(start))
}

func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				metrics.IncPanicRecoveries()
				logger.Error().
					Str("requestID", RequestIDFrom(req)).
					Str("method", req.Request.Method).
					Str("path", req.Request.URL.Path).
					Str("panic", fmt.Sprint(r)).
					Msg("panic recovered")
				HandleError(resp, fmt.Errorf("internal server error"), http.StatusInternalServerError)
			}
		}()

		chain.ProcessFilter(req, resp)
	}
}
