package ritual

// Channel identifies one scalar in the parameter vector.
//
// The channel set is fixed: ten named real-valued controls that every
// visual layer reads each frame.
type Channel int

const (
	// TiltX is the camera tilt around the horizontal axis.
	TiltX Channel = iota
	// TiltY is the camera tilt around the vertical axis.
	TiltY
	// Zoom is the camera zoom factor (1.0 = rest).
	Zoom
	// ZLift is the strength of grid-fragment lift off the plane.
	ZLift
	// NoiseAmp is the amplitude of coherent-noise drift.
	NoiseAmp
	// GlitchRate controls decorative instability.
	GlitchRate
	// GeometryCompletion reveals guides, spirals, and circles progressively.
	GeometryCompletion
	// GridVisibility fades the grid layer in and out.
	GridVisibility
	// ParticleEnergy scales the active particle count.
	ParticleEnergy
	// Weathering controls aging-texture intensity.
	Weathering

	// NumChannels is the fixed channel count.
	NumChannels
)

var channelNames = [NumChannels]string{
	"tilt_x",
	"tilt_y",
	"zoom",
	"z_lift",
	"noise_amp",
	"glitch_rate",
	"geometry_completion",
	"grid_visibility",
	"particle_energy",
	"weathering",
}

// String returns the wire name of the channel.
func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return "unknown"
	}
	return channelNames[c]
}

// Channels returns every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, NumChannels)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// ChannelByName resolves a wire name to a channel.
func ChannelByName(name string) (Channel, bool) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), true
		}
	}
	return 0, false
}

// Vector is a full parameter vector, indexed by Channel.
//
// Vector is a value type: assignment copies, so snapshots handed to the
// renderer are naturally read-only.
type Vector [NumChannels]float64

// Get returns the value of a channel. Out-of-range channels read as 0.
func (v Vector) Get(c Channel) float64 {
	if c < 0 || c >= NumChannels {
		return 0
	}
	return v[c]
}

// With returns a copy of the vector with one channel replaced.
func (v Vector) With(c Channel, value float64) Vector {
	if c >= 0 && c < NumChannels {
		v[c] = value
	}
	return v
}
