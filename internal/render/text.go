package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

// TextPresenter prints one "Label<sep>Value" line per successful readout.
// Failed readouts are left out.
type TextPresenter struct {
	out       io.Writer
	separator string
	bar       bool
	label     lipgloss.Style
}

// TextOptions configure a TextPresenter.
type TextOptions struct {
	// KeyColor is the label colour as "#rrggbb". Empty leaves labels plain.
	KeyColor string
	// Separator sits between the padded label column and the value.
	Separator string
	// Bar replaces the value of gauge fields with a 10-segment bar.
	Bar bool
}

// NewTextPresenter creates a TextPresenter writing to out. Colour is only
// emitted when out is a terminal that supports it.
func NewTextPresenter(out io.Writer, opts TextOptions) *TextPresenter {
	renderer := lipgloss.NewRenderer(out)
	label := renderer.NewStyle().Bold(true)
	if opts.KeyColor != "" {
		label = label.Foreground(lipgloss.Color(opts.KeyColor))
	}
	return &TextPresenter{
		out:       out,
		separator: opts.Separator,
		bar:       opts.Bar,
		label:     label,
	}
}

// Present implements Presenter.
func (p *TextPresenter) Present(readouts []monitor.Readout) error {
	width := 0
	for _, r := range readouts {
		if r.OK() {
			width = max(width, lipgloss.Width(r.Key.Label()))
		}
	}

	var b strings.Builder
	for _, r := range readouts {
		if !r.OK() {
			continue
		}
		label := r.Key.Label()
		padding := strings.Repeat(" ", width-lipgloss.Width(label))
		b.WriteString(p.label.Render(label))
		b.WriteString(padding)
		b.WriteString(p.separator)
		b.WriteString(p.value(r))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *TextPresenter) value(r monitor.Readout) string {
	if p.bar && r.Key.HasGauge() {
		return Bar(r.Gauge)
	}
	return r.Value
}

// PrintFieldList writes every field name with its label, one per line.
func PrintFieldList(out io.Writer, keys []monitor.FieldKey) error {
	width := 0
	for _, k := range keys {
		width = max(width, len(k.String()))
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "%-*s  %s\n", width, k.String(), k.Label()); err != nil {
			return err
		}
	}
	return nil
}
