package ritual

// Easing selects the curve applied to the per-state progress signal.
//
// Easing never touches the blended parameter vector - it only shapes the
// separate EasedProgress value, for effects that want a de-linearized
// progress signal.
type Easing int

const (
	// EaseInOut is the default curve for mid-sequence states.
	EaseInOut Easing = iota
	// EaseOut front-loads motion; used for the onboarding states.
	EaseOut
	// EaseIn back-loads motion; used for the destabilize state.
	EaseIn
)

var easingNames = map[string]Easing{
	"ease_in_out": EaseInOut,
	"ease_out":    EaseOut,
	"ease_in":     EaseIn,
}

// EasingByName resolves a wire name to an easing curve.
func EasingByName(name string) (Easing, bool) {
	e, ok := easingNames[name]
	return e, ok
}

// String returns the wire name of the easing curve.
func (e Easing) String() string {
	switch e {
	case EaseOut:
		return "ease_out"
	case EaseIn:
		return "ease_in"
	default:
		return "ease_in_out"
	}
}

// Apply maps linear progress t in [0,1] through the curve. Inputs outside
// the range are clamped.
func (e Easing) Apply(t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	switch e {
	case EaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EaseIn:
		return t * t * t
	default:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	}
}
