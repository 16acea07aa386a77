package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RequestBuilder helps build HTTP requests with fluent API
type RequestBuilder struct {
	method  string
	baseURL string
	path    string
	query   url.Values
	headers map[string]string
	token   *string
	body    interface{}
	form    *Form
	ctx     context.Context
}

// NewRequest creates a new request builder
func NewRequest(method, baseURL string) *RequestBuilder {
	return &RequestBuilder{
		method:  method,
		baseURL: baseURL,
		query:   make(url.Values),
		headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

// Path sets the URL path
func (b *RequestBuilder) Path(path string) *RequestBuilder {
	b.path = path
	return b
}

// Pathf sets the URL path from a format string. Arguments are interpolated
// as-is, so ids must already be URL-safe.
func (b *RequestBuilder) Pathf(format string, args ...any) *RequestBuilder {
	b.path = fmt.Sprintf(format, args...)
	return b
}

// Query adds a query parameter
func (b *RequestBuilder) Query(key, value string) *RequestBuilder {
	b.query.Add(key, value)
	return b
}

// OptionalQuery adds a query parameter when value is non-empty
func (b *RequestBuilder) OptionalQuery(key, value string) *RequestBuilder {
	if value != "" {
		b.query.Add(key, value)
	}
	return b
}

// Header adds a header
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// Bearer authenticates the request with token
func (b *RequestBuilder) Bearer(token string) *RequestBuilder {
	b.token = &token
	return b
}

// JSON sets the request body as JSON
func (b *RequestBuilder) JSON(body interface{}) *RequestBuilder {
	b.body = body
	b.form = nil
	b.headers["Content-Type"] = contentTypeJSON
	return b
}

// Multipart sets the request body as a multipart form
func (b *RequestBuilder) Multipart(form *Form) *RequestBuilder {
	b.form = form
	b.body = nil
	delete(b.headers, "Content-Type")
	return b
}

// Context sets the context
func (b *RequestBuilder) Context(ctx context.Context) *RequestBuilder {
	b.ctx = ctx
	return b
}

// URL renders the target URL without building the request
func (b *RequestBuilder) URL() (string, error) {
	u, err := url.Parse(b.baseURL + b.path)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}
	return u.String(), nil
}

// Build creates the HTTP request
func (b *RequestBuilder) Build() (*http.Request, error) {
	target, err := b.URL()
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	var formContentType string
	switch {
	case b.form != nil:
		buf, ct, err := b.form.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
		bodyReader = buf
		formContentType = ct
	case b.body != nil:
		encoded, err := json.Marshal(b.body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(b.ctx, b.method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if b.token != nil {
		for k, v := range Headers(*b.token, b.form != nil) {
			req.Header[k] = v
		}
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	if formContentType != "" {
		req.Header.Set("Content-Type", formContentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, newRequestID())
	}

	return req, nil
}

// Execute builds and executes the request using the provided client
func (b *RequestBuilder) Execute(client *Client) (*http.Response, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	return client.Do(b.ctx, req)
}

// ExecuteEnvelope builds, executes and unwraps the envelope's data into result.
// fallback is the message reported when the backend gives none.
func (b *RequestBuilder) ExecuteEnvelope(client *Client, fallback string, result interface{}) error {
	resp, err := b.Execute(client)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return DecodeEnvelope(b.ctx, resp, fallback, result)
}

// ExecuteWithMessage is ExecuteAck for calls whose data is welcome but not
// required. data is decoded into result only when present; the returned bool
// reports whether it was.
func (b *RequestBuilder) ExecuteWithMessage(client *Client, fallback string, result interface{}) (string, bool, error) {
	ack, err := b.ExecuteAck(client, fallback)
	if err != nil {
		return "", false, err
	}
	if !(Envelope{Data: ack.Data}).HasData() {
		return ack.Message, false, nil
	}
	if err := json.Unmarshal(ack.Data, result); err != nil {
		return "", false, fmt.Errorf("decode data: %w", err)
	}
	return ack.Message, true, nil
}

// ExecuteAck is ExecuteEnvelope for calls whose only payload is the outcome
func (b *RequestBuilder) ExecuteAck(client *Client, fallback string) (Ack, error) {
	resp, err := b.Execute(client)
	if err != nil {
		return Ack{}, err
	}
	defer resp.Body.Close()

	return DecodeAck(b.ctx, resp, fallback)
}
