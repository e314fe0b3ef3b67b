package spin

import (
	"strings"

	"github.com/nandanicollection/storefront/internal/commerce"
)

// The wheel plays a fixed-duration animation: several full turns plus the
// offset that lands the pointer on the awarded segment.
const (
	BaseRotations  = 6
	SpinDurationMS = 5000
)

// SegmentIndex matches the awarded discount text against the segment labels.
// No match defaults to the first segment so the rotation is always defined.
func SegmentIndex(segments []commerce.WheelSegment, discountText string) int {
	want := strings.TrimSpace(strings.ToLower(discountText))
	for i, s := range segments {
		if strings.TrimSpace(strings.ToLower(s.Label)) == want {
			return i
		}
	}
	return 0
}

// Rotation returns the total clockwise rotation in degrees for landing the
// pointer on segment idx of count segments.
func Rotation(count, idx int) float64 {
	if count <= 0 {
		return BaseRotations * 360
	}
	segment := 360.0 / float64(count)
	return BaseRotations*360 + (360 - (float64(idx)+0.5)*segment)
}
