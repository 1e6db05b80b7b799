package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/sysfetch/internal/platform"
)

func TestResolveMachine(t *testing.T) {
	tests := []struct {
		name  string
		facts ProductFacts
		want  string
	}{
		{
			name:  "vendor family name without version",
			facts: ProductFacts{Vendor: "Dell", Family: "Inspiron", Name: "15-3000"},
			want:  "Dell Inspiron 15-3000",
		},
		{
			name:  "family name and version agree",
			facts: ProductFacts{Vendor: "LENOVO", Family: "ThinkPad", Name: "ThinkPad", Version: "ThinkPad"},
			want:  "ThinkPad",
		},
		{
			name:  "short version is combined",
			facts: ProductFacts{Vendor: "HP", Name: "EliteBook 840 G5", Version: "KBC Version 02"},
			want:  "HP EliteBook 840 G5",
		},
		{
			name:  "version of exactly fifteen characters is combined",
			facts: ProductFacts{Vendor: "Acme", Name: "Box", Version: "123456789012345"},
			want:  "Acme Box",
		},
		{
			name:  "long version used verbatim",
			facts: ProductFacts{Vendor: "LENOVO", Family: "ThinkPad X1 Carbon 7th", Name: "20QDCTO1WW", Version: "ThinkPad X1 Carbon 7th"},
			want:  "ThinkPad X1 Carbon 7th",
		},
		{
			name:  "placeholders stripped",
			facts: ProductFacts{Vendor: "ASUS", Family: "To be filled by O.E.M.", Name: "System Product Name", Version: "System Version"},
			want:  "ASUS",
		},
		{
			name:  "placeholder inside a longer value",
			facts: ProductFacts{Vendor: "Gigabyte Technology Co., Ltd.", Name: "B450 AORUS ELITE", Version: "Default string"},
			want:  "Gigabyte Technology Co., Ltd. B450 AORUS ELITE",
		},
		{
			name:  "only placeholders",
			facts: ProductFacts{Vendor: "OEM", Name: "Not Specified", Version: "INVALID"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMachine(tt.facts))
		})
	}
}

func TestMachineReadout(t *testing.T) {
	ctx := context.Background()

	p := fullStub()
	p.product = &stubProduct{family: "ThinkPad", name: "ThinkPad", version: "ThinkPad"}
	r := New(p, Options{}).Collect(ctx, []FieldKey{Machine})[0]
	require.True(t, r.OK(), "missing vendor is optional")
	assert.Equal(t, "ThinkPad", r.Value)

	p.product = &stubProduct{}
	r = New(p, Options{}).Collect(ctx, []FieldKey{Machine})[0]
	assert.True(t, errors.Is(r.Err, platform.ErrMetricNotAvailable))

	p.product = &stubProduct{vendor: "To Be Filled By O.E.M.", name: "To Be Filled By O.E.M."}
	r = New(p, Options{}).Collect(ctx, []FieldKey{Machine})[0]
	require.NotNil(t, r.Err)
	assert.Equal(t, platform.KindMetricNotAvailable, r.Err.Kind)
}
