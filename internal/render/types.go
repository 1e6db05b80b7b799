// Package render turns collected readouts into terminal output.
//
// TextPresenter prints the normal labelled listing, ExportPresenter writes
// every readout as YAML or JSON, and DoctorPresenter explains why fields
// failed.
package render

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

// Presenter writes a collection to its output.
type Presenter interface {
	Present(readouts []monitor.Readout) error
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
