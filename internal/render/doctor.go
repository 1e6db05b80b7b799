package render

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/opd-ai/sysfetch/internal/monitor"
	"github.com/opd-ai/sysfetch/internal/platform"
)

// DoctorPresenter lists every field that did not produce a value, with the
// reason. Warnings and hard failures are printed differently.
type DoctorPresenter struct {
	out      io.Writer
	platform string
}

// NewDoctorPresenter creates a DoctorPresenter. platformName is shown in the
// section header. Colour is disabled when out is not a terminal.
func NewDoctorPresenter(out io.Writer, platformName string) *DoctorPresenter {
	if isTerminal(out) {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
	return &DoctorPresenter{out: out, platform: platformName}
}

// Present implements Presenter.
func (p *DoctorPresenter) Present(readouts []monitor.Readout) error {
	d := monitor.Diagnose(readouts)

	pterm.DefaultSection.WithWriter(p.out).Println("sysfetch doctor: " + p.platform)

	warning := pterm.Warning.WithWriter(p.out)
	failure := pterm.Error.WithWriter(p.out)
	for _, r := range readouts {
		switch {
		case r.OK():
		case r.Err.Kind == platform.KindWarning:
			warning.Printfln("%s: %s", r.Key.Label(), r.Err.Message())
		default:
			failure.Printfln("%s: %s (%s)", r.Key.Label(), r.Err.Message(), r.Err.Kind)
		}
	}

	summary := fmt.Sprintf("%d of %d fields read, %d warnings, %d failures",
		d.Succeeded(), len(d.Readouts), len(d.Warnings), len(d.Failures))
	if d.Healthy() {
		pterm.Success.WithWriter(p.out).Println(summary)
	} else {
		pterm.Info.WithWriter(p.out).Println(summary)
	}
	return nil
}
