package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"strings"

	"github.com/parlakisik/pawmarket/internal/model"
)

// Form is a multipart body under construction. Text fields keep insertion
// order; file parts are read from disk when the form is encoded.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name string
	file model.File
}

// NewForm creates an empty multipart form
func NewForm() *Form {
	return &Form{}
}

// Field appends a text field
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// OptionalField appends a text field only when value is non-empty
func (f *Form) OptionalField(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Field(name, value)
}

// FieldString appends a text field holding v.String(), which is how decimals
// and other Stringer values travel in a form.
func (f *Form) FieldString(name string, v fmt.Stringer) *Form {
	return f.Field(name, v.String())
}

// File appends a file part. A nil descriptor is skipped so optional uploads
// can be passed straight through.
func (f *Form) File(name string, file *model.File) *Form {
	if file == nil || file.URI == "" {
		return f
	}
	f.files = append(f.files, formFile{name: name, file: *file})
	return f
}

// Encode writes the form and returns the body with its content type
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}

	for _, ff := range f.files {
		if err := writeFilePart(w, ff); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, ff formFile) error {
	path, err := localPath(ff.file.URI)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", ff.name, err)
	}
	defer src.Close()

	contentType := ff.file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := ff.file.Name
	if filename == "" {
		filename = baseName(path)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(ff.name), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", ff.name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", ff.name, err)
	}
	return nil
}

// localPath accepts plain paths and file:// URIs
func localPath(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse file uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported file uri scheme %q", u.Scheme)
	}
	return u.Path, nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
