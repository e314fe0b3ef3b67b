package spin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nandanicollection/storefront/internal/commerce"
)

func segments() []commerce.WheelSegment {
	return []commerce.WheelSegment{
		{ID: 1, Label: "5% OFF"},
		{ID: 2, Label: "10% OFF"},
		{ID: 3, Label: "Free Shipping"},
		{ID: 4, Label: "₹100 OFF"},
	}
}

func TestSegmentIndex(t *testing.T) {
	assert.Equal(t, 1, SegmentIndex(segments(), "10% OFF"))
	assert.Equal(t, 2, SegmentIndex(segments(), "free shipping"))
	assert.Equal(t, 3, SegmentIndex(segments(), " ₹100 OFF "))
	assert.Equal(t, 0, SegmentIndex(segments(), "no such prize"))
	assert.Equal(t, 0, SegmentIndex(nil, "anything"))
}

func TestRotationLandsOnSegmentCenter(t *testing.T) {
	// 4 segments of 90 degrees; index 1 centers at 135, so the wheel turns
	// 6 full rotations plus (360 - 135).
	assert.InDelta(t, 6*360+225.0, Rotation(4, 1), 1e-9)
	assert.InDelta(t, 6*360+315.0, Rotation(4, 0), 1e-9)
	assert.InDelta(t, float64(6*360), Rotation(0, 0), 1e-9)
}
