package httpclient

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/parlakisik/pawmarket/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func parseBuiltForm(t *testing.T, req *http.Request) *multipart.Form {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("Content-Type = %v, want multipart/form-data", mediaType)
	}
	form, err := multipart.NewReader(req.Body, params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form
}

func TestBuild_Multipart(t *testing.T) {
	path := writeTemp(t, "shrimp.jpg", "jpeg-bytes")

	form := NewForm().
		Field("title", "Shrimp").
		FieldString("base_price", decimal.RequireFromString("45.50")).
		OptionalField("subcategory", "").
		File("thumbnail", &model.File{URI: "file://" + path, Name: "thumb.jpg", Type: "image/jpeg"})

	req, err := NewRequest(http.MethodPost, "http://example.com").
		Path("/marketplace/listings").
		Bearer("tok").
		Multipart(form).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if ct := req.Header.Get("Content-Type"); strings.Contains(ct, "application/json") {
		t.Errorf("multipart request has JSON content type %q", ct)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", got)
	}

	parsed := parseBuiltForm(t, req)
	if got := parsed.Value["title"]; len(got) != 1 || got[0] != "Shrimp" {
		t.Errorf("title = %v, want [Shrimp]", got)
	}
	if got := parsed.Value["base_price"]; len(got) != 1 || got[0] != "45.5" {
		t.Errorf("base_price = %v, want [45.5]", got)
	}
	if _, ok := parsed.Value["subcategory"]; ok {
		t.Error("empty optional field was sent")
	}

	files := parsed.File["thumbnail"]
	if len(files) != 1 {
		t.Fatalf("thumbnail parts = %d, want 1", len(files))
	}
	if files[0].Filename != "thumb.jpg" {
		t.Errorf("filename = %v, want thumb.jpg", files[0].Filename)
	}
	if ct := files[0].Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("part Content-Type = %v, want image/jpeg", ct)
	}
	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("open part: %v", err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	if string(b) != "jpeg-bytes" {
		t.Errorf("part content = %q, want jpeg-bytes", b)
	}
}

func TestForm_NilFileSkipped(t *testing.T) {
	req, err := NewRequest(http.MethodPatch, "http://example.com").
		Multipart(NewForm().Field("expertise_tags", "[]").File("profile_video", nil).File("thumbnail", &model.File{})).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	parsed := parseBuiltForm(t, req)
	if len(parsed.File) != 0 {
		t.Errorf("file parts = %d, want 0", len(parsed.File))
	}
	if got := parsed.Value["expertise_tags"]; len(got) != 1 || got[0] != "[]" {
		t.Errorf("expertise_tags = %v, want [[]]", got)
	}
}

func TestForm_DefaultsFromPath(t *testing.T) {
	path := writeTemp(t, "clip.mp4", "video")

	req, err := NewRequest(http.MethodPatch, "http://example.com").
		Multipart(NewForm().File("profile_video", &model.File{URI: path})).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	parsed := parseBuiltForm(t, req)
	part := parsed.File["profile_video"][0]
	if part.Filename != "clip.mp4" {
		t.Errorf("filename = %v, want clip.mp4", part.Filename)
	}
	if ct := part.Header.Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("part Content-Type = %v, want application/octet-stream", ct)
	}
}

func TestForm_MissingFile(t *testing.T) {
	_, err := NewRequest(http.MethodPost, "http://example.com").
		Multipart(NewForm().File("thumbnail", &model.File{URI: "/does/not/exist.jpg"})).
		Build()
	if err == nil {
		t.Fatal("Build() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "thumbnail") {
		t.Errorf("Build() error = %v, want mention of the part name", err)
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "/tmp/a.jpg", want: "/tmp/a.jpg"},
		{uri: "file:///tmp/a.jpg", want: "/tmp/a.jpg"},
		{uri: "https://cdn.example.com/a.jpg", wantErr: true},
	}
	for _, tt := range tests {
		got, err := localPath(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("localPath(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("localPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
