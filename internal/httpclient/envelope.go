package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrEmptyData is wrapped by the APIError returned when a successful response
// carries no data for a call that needs it.
var ErrEmptyData = errors.New("response envelope has no data")

// Envelope is the {message, data} wrapper of every backend response
type Envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HasData reports whether the envelope carried a non-null data field
func (e Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Ack is the outcome of a call whose response payload is informational
type Ack struct {
	StatusCode int             `json:"-"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// APIError is a normalized application failure. Error() is the message meant
// for the end user: the backend's own message, or the call's fallback.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// DecodeEnvelope applies the success/failure rules to resp and, on success,
// decodes the envelope's data into result (skipped when result is nil).
func DecodeEnvelope(ctx context.Context, resp *http.Response, fallback string, result interface{}) error {
	_, err := decodeEnvelope(ctx, resp, fallback, result)
	return err
}

func decodeEnvelope(ctx context.Context, resp *http.Response, fallback string, result interface{}) (Envelope, error) {
	env, err := readEnvelope(ctx, resp, fallback)
	if err != nil {
		return Envelope{}, err
	}

	if !env.HasData() {
		return Envelope{}, &APIError{StatusCode: resp.StatusCode, Message: fallback, Err: ErrEmptyData}
	}
	if result == nil {
		return env, nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return Envelope{}, fmt.Errorf("decode data: %w", err)
	}
	return env, nil
}

// DecodeAck is DecodeEnvelope for acknowledgement calls: data may be absent
// and an empty 2xx body is accepted.
func DecodeAck(ctx context.Context, resp *http.Response, fallback string) (Ack, error) {
	env, err := readEnvelope(ctx, resp, fallback)
	if err != nil {
		return Ack{}, err
	}
	return Ack{StatusCode: resp.StatusCode, Message: env.Message, Data: env.Data}, nil
}

func readEnvelope(ctx context.Context, resp *http.Response, fallback string) (Envelope, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("read response: %w", err)
	}

	var env Envelope
	if !isSuccess(resp.StatusCode) {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}
		if json.Unmarshal(body, &env) == nil && strings.TrimSpace(env.Message) != "" {
			apiErr.Message = env.Message
		}
		slog.WarnContext(ctx, "request rejected",
			"status", resp.StatusCode,
			"path", requestPath(resp),
			"message", apiErr.Message,
		)
		return Envelope{}, apiErr
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return Envelope{}, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode response: %w", err)
	}
	if env.Message != "" {
		slog.DebugContext(ctx, "backend message on success", "path", requestPath(resp), "message", env.Message)
	}
	return env, nil
}

func requestPath(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.Path
}
