package pdfdoc

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// deliver performs the side effect of the result's destination.
func deliver(res *Result, sink io.Writer, fs afero.Fs) error {
	switch res.destination {
	case Inline, Download:
		if sink == nil {
			return ErrNoOutput
		}
		if rw, ok := sink.(http.ResponseWriter); ok {
			setPDFHeaders(rw.Header(), res)
		}
		if _, err := res.WriteTo(sink); err != nil {
			return fmt.Errorf("pdfdoc: writing output: %w", err)
		}
	case File:
		if err := res.Save(fs, res.filename); err != nil {
			return fmt.Errorf("pdfdoc: writing %s: %w", res.filename, err)
		}
	case String:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDestination, res.destination)
	}
	return nil
}

func setPDFHeaders(h http.Header, res *Result) {
	disposition := "inline"
	if res.destination == Download {
		disposition = "attachment"
	}
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": filepath.Base(res.filename),
	}))
	h.Set("Content-Length", strconv.Itoa(res.Len()))
}
