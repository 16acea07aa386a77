package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// Headers builds the headers for an authenticated call. The token is passed
// through unchanged; rejecting it is the backend's job. Multipart calls get no
// Content-Type here because the form encoder owns the boundary.
func Headers(token string, isMultipart bool) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	if !isMultipart {
		h.Set("Content-Type", contentTypeJSON)
	}
	return h
}

func newRequestID() string {
	return uuid.NewString()
}
