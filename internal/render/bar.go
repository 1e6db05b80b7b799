package render

import "strings"

// BarSegments is the number of cells in a gauge bar.
const BarSegments = 10

const (
	barFilled = "■"
	barEmpty  = "□"
)

// Bar renders a 0-10 gauge bucket as "[■■■■■■□□□□]". Out-of-range buckets
// are clamped.
func Bar(bucket int) string {
	bucket = max(0, min(BarSegments, bucket))
	return "[" + strings.Repeat(barFilled, bucket) + strings.Repeat(barEmpty, BarSegments-bucket) + "]"
}
