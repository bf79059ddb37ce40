package ritual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasing_Endpoints(t *testing.T) {
	for _, e := range []Easing{EaseInOut, EaseOut, EaseIn} {
		assert.Equal(t, 0.0, e.Apply(0), "%s at t=0", e)
		assert.Equal(t, 1.0, e.Apply(1), "%s at t=1", e)
	}
}

func TestEasing_Clamps(t *testing.T) {
	for _, e := range []Easing{EaseInOut, EaseOut, EaseIn} {
		assert.Equal(t, 0.0, e.Apply(-0.5), "%s below range", e)
		assert.Equal(t, 1.0, e.Apply(1.5), "%s above range", e)
	}
}

func TestEasing_Character(t *testing.T) {
	assert.Equal(t, 0.875, EaseOut.Apply(0.5), "ease_out front-loads motion")
	assert.Equal(t, 0.125, EaseIn.Apply(0.5), "ease_in back-loads motion")
	assert.Equal(t, 0.5, EaseInOut.Apply(0.5), "ease_in_out is symmetric at the midpoint")
	assert.Equal(t, 0.0625, EaseInOut.Apply(0.25))
}

func TestEasing_Monotonic(t *testing.T) {
	for _, e := range []Easing{EaseInOut, EaseOut, EaseIn} {
		prev := e.Apply(0)
		for i := 1; i <= 100; i++ {
			v := e.Apply(float64(i) / 100)
			require.GreaterOrEqual(t, v, prev, "%s must be non-decreasing", e)
			prev = v
		}
	}
}

func TestEasingByName(t *testing.T) {
	for _, e := range []Easing{EaseInOut, EaseOut, EaseIn} {
		got, ok := EasingByName(e.String())
		require.True(t, ok)
		assert.Equal(t, e, got)
	}
	_, ok := EasingByName("bounce")
	assert.False(t, ok)
}
