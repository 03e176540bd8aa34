package pdfdoc

import (
	"encoding/base64"
	"io"

	"github.com/spf13/afero"
)

// Result is a rendered PDF. Render returns one for every destination, so
// the bytes stay available after the side effect has run.
type Result struct {
	data        []byte
	filename    string
	destination Destination
}

// Bytes returns the PDF content. The slice must not be modified.
func (r *Result) Bytes() []byte { return r.data }

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int { return len(r.data) }

// Filename returns the filename the document carried at render time.
func (r *Result) Filename() string { return r.filename }

// Destination returns where the PDF was delivered.
func (r *Result) Destination() Destination { return r.destination }

// Base64 returns the PDF in standard base64 encoding, for embedding in
// JSON payloads or data URIs.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// WriteTo implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Save writes the PDF to name on fs with mode 0644, replacing any existing
// file.
func (r *Result) Save(fs afero.Fs, name string) error {
	return afero.WriteFile(fs, name, r.data, 0o644)
}
