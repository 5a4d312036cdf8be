package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

var (
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrMalformedBody = errors.New("malformed request body")
	ErrOriginBlocked = errors.New("origin not allowed by CORS")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes err as an ErrorResponse with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	_ = resp.WriteHeaderAndJson(status, newErrorResponse(err, status), restful.MIME_JSON)
}

// WriteError is HandleError for handlers that sit outside the restful container.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", restful.MIME_JSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(newErrorResponse(err, status))
}

func newErrorResponse(err error, status int) ErrorResponse {
	body := ErrorResponse{
		Error: http.StatusText(status),
		Code:  status,
	}
	if err != nil {
		body.Details = err.Error()
	}
	return body
}
