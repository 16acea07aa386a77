package model

// File describes a local asset to upload as a multipart file part.
// URI is a filesystem path or a file:// URI.
type File struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}
