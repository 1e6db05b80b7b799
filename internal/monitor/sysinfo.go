package monitor

import (
	"context"
	"strings"

	"github.com/opd-ai/sysfetch/internal/platform"
)

// productPlaceholders are filler strings firmware vendors leave in SMBIOS
// fields. Longer entries come first so they win over their substrings.
var productPlaceholders = []string{
	"To be filled by O.E.M.",
	"To Be Filled By O.E.M.",
	"Type1ProductConfigId",
	"System Product Name",
	"System Version",
	"Default string",
	"Not Applicable",
	"Not Specified",
	"All Series",
	"Undefined",
	"INVALID",
	"OEM",
	"�",
}

var placeholderStripper = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(productPlaceholders))
	for _, p := range productPlaceholders {
		pairs = append(pairs, p, "")
	}
	return strings.NewReplacer(pairs...)
}()

// machineVersionLimit is the longest version string still combined with the
// vendor, family and name. Longer versions are used on their own.
const machineVersionLimit = 15

// ProductFacts are the raw product sub-facts the Machine field is built from.
type ProductFacts struct {
	Vendor  string
	Family  string
	Name    string
	Version string
}

// cleanProductField removes placeholder text and collapses whitespace.
func cleanProductField(s string) string {
	return strings.Join(strings.Fields(placeholderStripper.Replace(s)), " ")
}

// ResolveMachine builds the machine name from product sub-facts.
//
// If family, name and version are the same non-empty value it is returned.
// Otherwise a version of at most machineVersionLimit characters (or none)
// yields "vendor family name" with empty parts skipped, and a longer version
// is returned verbatim.
func ResolveMachine(f ProductFacts) string {
	vendor := cleanProductField(f.Vendor)
	family := cleanProductField(f.Family)
	name := cleanProductField(f.Name)
	version := cleanProductField(f.Version)

	if family != "" && family == name && name == version {
		return family
	}
	if len(version) <= machineVersionLimit {
		var parts []string
		for _, p := range []string{vendor, family, name} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " ")
	}
	return version
}

func (c *collection) machine(ctx context.Context, key FieldKey) Readout {
	product := c.platform.Product()

	var facts ProductFacts
	var firstErr error
	ok := false
	for _, sub := range []struct {
		dst  *string
		read func(context.Context) (string, error)
	}{
		{&facts.Vendor, product.Vendor},
		{&facts.Family, product.Family},
		{&facts.Name, product.Name},
		{&facts.Version, product.Version},
	} {
		v, err := sub.read(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		*sub.dst = v
		ok = true
	}
	if !ok {
		return failure(key, firstErr)
	}

	machine := ResolveMachine(facts)
	if machine == "" {
		return failure(key, platform.NotAvailable("product information only holds placeholder text"))
	}
	return success(key, machine)
}
