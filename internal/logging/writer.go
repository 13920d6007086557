// ABOUTME: io.Writer that fans out log lines to several destinations.
// ABOUTME: Errors from individual writers are combined, the rest still receive the data.
package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes every p to all Writers.
type CombinedWriter struct {
	Writers []io.Writer
}

// NewCombinedWriter returns a CombinedWriter over the non-nil writers.
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

// Write reports len(p) when every writer succeeded, otherwise the shortest
// write among the failing writers.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Combine(err, werr)
			n = min(n, written)
		}
	}
	return n, err
}
