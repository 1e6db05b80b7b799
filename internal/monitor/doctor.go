package monitor

import (
	"github.com/opd-ai/sysfetch/internal/platform"
)

// Diagnosis partitions a collection into successes, expected soft
// conditions (Warning) and hard failures (every other kind). It is a
// read-only view over the readouts it was built from.
type Diagnosis struct {
	Readouts []Readout
	Failures []Readout
	Warnings []Readout
}

// Diagnose partitions readouts. Order within each partition follows the
// collection.
func Diagnose(readouts []Readout) Diagnosis {
	d := Diagnosis{Readouts: readouts}
	for _, r := range readouts {
		switch {
		case r.OK():
		case r.Err.Kind == platform.KindWarning:
			d.Warnings = append(d.Warnings, r)
		default:
			d.Failures = append(d.Failures, r)
		}
	}
	return d
}

// Succeeded returns the number of readouts that produced a value.
func (d Diagnosis) Succeeded() int {
	return len(d.Readouts) - len(d.Failures) - len(d.Warnings)
}

// Healthy reports whether no field failed hard.
func (d Diagnosis) Healthy() bool {
	return len(d.Failures) == 0
}

// Failed reports whether the readout for key did not succeed.
func (d Diagnosis) Failed(key FieldKey) bool {
	for _, r := range d.Readouts {
		if r.Key == key && !r.OK() {
			return true
		}
	}
	return false
}

// ByKind returns the unsuccessful readouts whose error has the given kind.
func (d Diagnosis) ByKind(kind platform.ErrorKind) []Readout {
	var result []Readout
	for _, r := range d.Readouts {
		if !r.OK() && r.Err.Kind == kind {
			result = append(result, r)
		}
	}
	return result
}
