package pdfdoc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

var samplePDF = []byte("%PDF-1.4 fake content for testing")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestResult_Accessors(t *testing.T) {
	r := &Result{data: samplePDF, filename: "report.pdf", destination: Download}
	if !bytes.Equal(r.Bytes(), samplePDF) || r.Len() != len(samplePDF) {
		t.Errorf("Bytes/Len = %q/%d", r.Bytes(), r.Len())
	}
	if r.Filename() != "report.pdf" || r.Destination() != Download {
		t.Errorf("Filename/Destination = %q/%v", r.Filename(), r.Destination())
	}

	raw, err := base64.StdEncoding.DecodeString(r.Base64())
	if err != nil || !bytes.Equal(raw, samplePDF) {
		t.Errorf("Base64 does not decode to the PDF: %v", err)
	}
}

func TestResult_WriteTo(t *testing.T) {
	r := &Result{data: samplePDF}

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil || n != int64(len(samplePDF)) || !bytes.Equal(buf.Bytes(), samplePDF) {
		t.Errorf("WriteTo = %d, %v; wrote %q", n, err, buf.Bytes())
	}

	if _, err := r.WriteTo(failingWriter{}); err == nil {
		t.Error("WriteTo to a failing writer returned nil")
	}
}

func TestResult_Save(t *testing.T) {
	r := &Result{data: samplePDF}

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/out/a.pdf", []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(fs, "/out/a.pdf"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := afero.ReadFile(fs, "/out/a.pdf")
	if err != nil || !bytes.Equal(got, samplePDF) {
		t.Errorf("saved %q, %v; want the PDF over the stale file", got, err)
	}

	if err := r.Save(afero.NewReadOnlyFs(fs), "/out/b.pdf"); err == nil {
		t.Error("Save on a read-only filesystem returned nil")
	}
}
