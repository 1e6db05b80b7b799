package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

// ExportFormat selects the encoding of an ExportPresenter.
type ExportFormat string

const (
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// ParseExportFormat accepts "yaml", "yml" or "json" in any case.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want yaml or json)", s)
	}
}

// ExportRecord is the serialized form of one readout.
type ExportRecord struct {
	Key   monitor.FieldKey `json:"key" yaml:"key"`
	Value string           `json:"value,omitempty" yaml:"value,omitempty"`
	Gauge *int             `json:"gauge,omitempty" yaml:"gauge,omitempty"`
	Error *ExportError     `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExportError is the serialized form of a readout failure.
type ExportError struct {
	Kind   string `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

// NewExportRecords converts readouts, failures included, for serialization.
func NewExportRecords(readouts []monitor.Readout) []ExportRecord {
	records := make([]ExportRecord, 0, len(readouts))
	for _, r := range readouts {
		rec := ExportRecord{Key: r.Key}
		if r.OK() {
			rec.Value = r.Value
			if r.Key.HasGauge() {
				g := r.Gauge
				rec.Gauge = &g
			}
		} else {
			rec.Error = &ExportError{Kind: r.Err.Kind.String(), Reason: r.Err.Message()}
		}
		records = append(records, rec)
	}
	return records
}

// ExportPresenter writes every readout in a machine-readable format.
type ExportPresenter struct {
	out    io.Writer
	format ExportFormat
}

// NewExportPresenter creates an ExportPresenter.
func NewExportPresenter(out io.Writer, format ExportFormat) *ExportPresenter {
	return &ExportPresenter{out: out, format: format}
}

// Present implements Presenter.
func (p *ExportPresenter) Present(readouts []monitor.Readout) error {
	records := NewExportRecords(readouts)
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", p.format)
	}
}
