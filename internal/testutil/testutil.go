package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/parlakisik/pawmarket/internal/httpclient"
)

// Recorded is one request seen by the fake backend
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	Form   *multipart.Form
}

// Reply is what the fake backend answers for a route. Raw, when set, is sent
// verbatim instead of the JSON encoding of Body.
type Reply struct {
	Status int
	Body   any
	Raw    *string
}

// FakeBackend is an httptest server that records requests and answers with
// canned envelopes.
type FakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	router   *mux.Router
	requests []Recorded
}

// NewFakeBackend starts a fake backend that is closed with the test
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{router: mux.NewRouter()}
	f.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record(t, r)
		writeReply(w, Reply{Status: http.StatusNotFound, Body: Message("route not found")})
	})
	f.Server = httptest.NewServer(f.router)
	t.Cleanup(f.Close)
	return f
}

// Handle registers a canned reply for method and a mux path template
func (f *FakeBackend) Handle(t *testing.T, method, path string, reply Reply) {
	t.Helper()
	f.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		f.record(t, r)
		writeReply(w, reply)
	}).Methods(method)
}

// Client returns an httpclient.Client pointed at the fake backend
func (f *FakeBackend) Client() *httpclient.Client {
	return httpclient.NewClient(f.URL, 5*time.Second)
}

// Requests returns a copy of every recorded request
func (f *FakeBackend) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Recorded, len(f.requests))
	copy(out, f.requests)
	return out
}

// Last returns the most recent request, failing the test if there is none
func (f *FakeBackend) Last(t *testing.T) Recorded {
	t.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatal("fake backend received no requests")
	}
	return reqs[len(reqs)-1]
}

func (f *FakeBackend) record(t *testing.T, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("read request body: %v", err)
	}

	rec := Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	}

	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(32 << 20)
		if err != nil {
			t.Errorf("parse multipart body: %v", err)
		} else {
			rec.Form = form
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
}

func writeReply(w http.ResponseWriter, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if reply.Raw != nil {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, *reply.Raw)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if reply.Body != nil {
		_ = json.NewEncoder(w).Encode(reply.Body)
	}
}

// Data wraps v in a success envelope
func Data(v any) map[string]any {
	return map[string]any{"data": v}
}

// Message builds an envelope carrying only a message
func Message(m string) map[string]any {
	return map[string]any{"message": m}
}

// Raw returns a pointer for Reply.Raw
func Raw(s string) *string {
	return &s
}

// DecodeJSON unmarshals a recorded body into a generic map
func (r Recorded) DecodeJSON(t *testing.T) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(r.Body, &out); err != nil {
		t.Fatalf("decode request body %q: %v", r.Body, err)
	}
	return out
}

// FormValue returns the first value of a multipart text field
func (r Recorded) FormValue(name string) (string, bool) {
	if r.Form == nil {
		return "", false
	}
	v, ok := r.Form.Value[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// FormFile returns the content and declared type of a multipart file part
func (r Recorded) FormFile(t *testing.T, name string) (content string, filename string, contentType string) {
	t.Helper()
	if r.Form == nil || len(r.Form.File[name]) == 0 {
		t.Fatalf("no file part %q in request", name)
	}
	fh := r.Form.File[name][0]
	src, err := fh.Open()
	if err != nil {
		t.Fatalf("open file part %q: %v", name, err)
	}
	defer src.Close()
	b, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("read file part %q: %v", name, err)
	}
	return string(b), fh.Filename, fh.Header.Get("Content-Type")
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("Expected no error, got: %v - %v", err, msgAndArgs)
		} else {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("Expected error, got nil - %v", msgAndArgs)
		} else {
			t.Fatal("Expected error, got nil")
		}
	}
}

// AssertErrorMessage fails the test unless err's message is exactly want
func AssertErrorMessage(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("Expected error %q, got %q", want, err.Error())
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if expected != actual {
		if len(msgAndArgs) > 0 {
			t.Fatalf("Expected %v, got %v - %v", expected, actual, msgAndArgs)
		} else {
			t.Fatalf("Expected %v, got %v", expected, actual)
		}
	}
}

// AssertContains fails the test if substring is not in str
func AssertContains(t *testing.T, str, substring string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(str, substring) {
		if len(msgAndArgs) > 0 {
			t.Fatalf("Expected %q to contain %q - %v", str, substring, msgAndArgs)
		} else {
			t.Fatalf("Expected %q to contain %q", str, substring)
		}
	}
}
