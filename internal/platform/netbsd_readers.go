package platform

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
)

// envstatBattery is one battery as reported by envstat(8).
type envstatBattery struct {
	present   bool
	charging  bool
	hasState  bool
	chargePct float64
	hasCharge bool
	designCap float64
	lastFull  float64
}

var envstatPercent = regexp.MustCompile(`\(\s*([0-9.]+)%\)`)

// parseEnvstatBattery parses `envstat -d acpibat0`.
//
//	[acpibat0]
//	          present:         TRUE
//	       design cap:    44400.000                   mWh
//	    last full cap:    41300.000                   mWh
//	           charge:    30000.000   ...             mWh (72.64%)
//	         charging:        FALSE
func parseEnvstatBattery(output []byte) envstatBattery {
	var b envstatBattery
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		fields := strings.Fields(val)
		switch key {
		case "present":
			b.present = strings.EqualFold(val, "TRUE")
		case "charging":
			b.hasState = true
			b.charging = strings.EqualFold(val, "TRUE")
		case "charge":
			if m := envstatPercent.FindStringSubmatch(val); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					b.chargePct = v
					b.hasCharge = true
				}
			}
		case "design cap":
			if len(fields) > 0 {
				b.designCap, _ = strconv.ParseFloat(fields[0], 64)
			}
		case "last full cap":
			if len(fields) > 0 {
				b.lastFull, _ = strconv.ParseFloat(fields[0], 64)
			}
		}
	}
	return b
}

// envstatBatteryReadout implements BatteryReadout with envstat(8).
type envstatBatteryReadout struct {
	src    Source
	device string
}

func (r envstatBatteryReadout) read(ctx context.Context) (envstatBattery, error) {
	out, err := r.src.Run(ctx, "envstat", "-d", r.device)
	if err != nil {
		return envstatBattery{}, FromProbeError("envstat", err)
	}
	b := parseEnvstatBattery(out)
	if !b.present {
		return envstatBattery{}, NotAvailable(r.device + " is not present")
	}
	return b, nil
}

func (r envstatBatteryReadout) Percentage(ctx context.Context) (uint8, error) {
	b, err := r.read(ctx)
	if err != nil {
		return 0, err
	}
	if !b.hasCharge {
		return 0, NotAvailable(r.device + " reports no charge")
	}
	return uint8(clampPercent(b.chargePct)), nil
}

func (r envstatBatteryReadout) Status(ctx context.Context) (BatteryState, error) {
	b, err := r.read(ctx)
	if err != nil {
		return BatteryUnknown, err
	}
	switch {
	case !b.hasState:
		return BatteryUnknown, nil
	case b.charging:
		return BatteryCharging, nil
	case b.hasCharge && b.chargePct >= 100:
		return BatteryFull, nil
	default:
		return BatteryDischarging, nil
	}
}

func (r envstatBatteryReadout) Health(ctx context.Context) (uint8, error) {
	b, err := r.read(ctx)
	if err != nil {
		return 0, err
	}
	if b.designCap <= 0 || b.lastFull <= 0 {
		return 0, NotAvailable(r.device + " reports no capacity")
	}
	return uint8(clampPercent(b.lastFull / b.designCap * 100)), nil
}

// netbsdGeneral adds the NetBSD-specific facts to the sysctl readers.
type netbsdGeneral struct {
	*sysctlGeneral
	disp   displayServer
	getenv func(string) string
}

func (g netbsdGeneral) OperatingSystem(context.Context) (string, error) {
	osType, err := g.sysctlString("kern.ostype")
	if err != nil {
		return "", err
	}
	release, err := g.sysctlString("kern.osrelease")
	if err != nil {
		return "", err
	}
	return osType + " " + release, nil
}

func (g netbsdGeneral) DesktopEnvironment(context.Context) (string, error) {
	return desktopFromEnv(g.getenv)
}

func (g netbsdGeneral) SessionType(ctx context.Context) (string, error) {
	t, err := envSession{getenv: g.getenv}.SessionType(ctx)
	if err != nil {
		return "", err
	}
	return capitalize(t), nil
}

func (g netbsdGeneral) WindowManager(ctx context.Context) (string, error) {
	if g.disp == nil {
		return "", NotAvailable("no display server")
	}
	return g.disp.WindowManager(ctx)
}

func (g netbsdGeneral) Resolution(ctx context.Context) (string, error) {
	if g.disp == nil {
		return "", NotAvailable("no display server")
	}
	return g.disp.Resolution(ctx)
}
