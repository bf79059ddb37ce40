package layers

import "math"

// Phi is the golden ratio, the growth constant of the spiral family.
var Phi = (1 + math.Sqrt(5)) / 2

// Geometry layer bounds. Coordinates are normalized: the canvas is a unit
// square centered on the origin, radii in [0, 0.5].
const (
	// GeometryMinCircleSets/MaxCircleSets bound the concentric-circle set count (inclusive).
	GeometryMinCircleSets = 2
	GeometryMaxCircleSets = 4

	// CircleSetMaxCenterOffset is the +/- random offset of a set's center.
	CircleSetMaxCenterOffset = 0.08

	// CircleSetMinRadius/MaxRadius bound a set's outermost radius.
	CircleSetMinRadius = 0.18
	CircleSetMaxRadius = 0.42

	// CircleSetMinCircles/MaxCircles bound circles per set (max exclusive).
	CircleSetMinCircles = 3
	CircleSetMaxCircles = 9

	// CircleSetFillChance is the probability a set renders filled.
	CircleSetFillChance = 0.7

	// CircleSetMinFillAlpha/MaxFillAlpha bound fill translucency.
	CircleSetMinFillAlpha = 0.04
	CircleSetMaxFillAlpha = 0.12

	// GeometryMinSpirals/MaxSpirals bound the spiral count (inclusive).
	GeometryMinSpirals = 1
	GeometryMaxSpirals = 3

	// SpiralMinRadius/MaxRadius bound a spiral's outermost radius.
	SpiralMinRadius = 0.30
	SpiralMaxRadius = 0.48

	// SpiralMinTurns/MaxTurns bound spiral turns.
	SpiralMinTurns = 2.0
	SpiralMaxTurns = 4.0

	// SpiralSamples is the fixed point count each spiral is sampled at.
	SpiralSamples = 220

	// GeometryMinGuides/MaxGuides bound the radial guide count (inclusive).
	GeometryMinGuides = 8
	GeometryMaxGuides = 16

	// GuideAngleJitter is the +/- angular jitter off even spacing, radians.
	GuideAngleJitter = 0.06

	// GuideMinLength/MaxLength bound guide length.
	GuideMinLength = 0.35
	GuideMaxLength = 0.50
)

// Geometry reveal thresholds, keyed off the geometry-completion channel.
const (
	RevealGuides  = 0.05
	RevealSpirals = 0.10
	RevealCircles = 0.20
)

// Grid layer bounds.
const (
	// GridMinSide/MaxSide bound the square grid's side length (max exclusive).
	GridMinSide = 9
	GridMaxSide = 14

	// GridMinFilled/MaxFilled bound the filled-cell count (max exclusive).
	GridMinFilled = 10
	GridMaxFilled = 22

	// GridCellMinAlpha/MaxAlpha bound filled-cell translucency.
	GridCellMinAlpha = 0.15
	GridCellMaxAlpha = 0.55

	// GridMinFragments/MaxFragments bound detachable fragments (max exclusive).
	GridMinFragments = 3
	GridMaxFragments = 7

	// FragmentMaxLateralDrift is the +/- per-second lateral drift bound.
	FragmentMaxLateralDrift = 0.04

	// FragmentMinZDrift/MaxZDrift bound upward drift speed.
	FragmentMinZDrift = 0.05
	FragmentMaxZDrift = 0.18

	// ZLiftDetachThreshold is the z-lift level past which fragments detach.
	ZLiftDetachThreshold = 0.3

	// FragmentSettleRate pulls a detached fragment's offset back toward the
	// plane when z-lift drops below the threshold (1/sec).
	FragmentSettleRate = 1.5

	// GridInnerBand is the fraction of lines, measured from the grid
	// center, assigned the inner palette color.
	GridInnerBand = 0.3
)

// Particle layer bounds.
const (
	// ParticleCapacity is the fixed pool size. Active count each frame is
	// floor(energy * ParticleCapacity); inactive particles are skipped,
	// never removed.
	ParticleCapacity = 120

	// ParticleSpawnRadius is the disk radius initial positions sample from.
	ParticleSpawnRadius = 0.35

	// ParticleMaxRadius triggers radial wraparound.
	ParticleMaxRadius = 0.5

	// ParticleMaxInitialSpeed is the +/- bound of initial velocity.
	ParticleMaxInitialSpeed = 0.02

	// ParticleMinSize/MaxSize bound render size.
	ParticleMinSize = 0.6
	ParticleMaxSize = 2.4

	// ParticleMinLifespan/MaxLifespan bound lifespan, seconds.
	ParticleMinLifespan = 4.0
	ParticleMaxLifespan = 12.0

	// ParticleDamping is the constant multiplicative velocity damping per tick.
	ParticleDamping = 0.96

	// ParticleSteerForce scales the noise-driven steering acceleration.
	ParticleSteerForce = 0.12

	// ParticleNoiseScale maps particle position into noise space.
	ParticleNoiseScale = 2.4

	// ParticleNoiseDrift advances the noise field's third coordinate per second.
	ParticleNoiseDrift = 0.15

	// ParticleTrailLength bounds the FIFO trail history.
	ParticleTrailLength = 8

	// ParticleWrapScale places a wrapped particle just inside the opposite rim.
	ParticleWrapScale = 0.98
)

// Weathering layer bounds.
const (
	// StainCount and FleckCount are fixed; only their attributes are drawn.
	StainCount = 6
	FleckCount = 24

	// StainMaxCenter is the +/- bound of stain centers.
	StainMaxCenter = 0.45

	// StainMinRadius/MaxRadius bound stain size.
	StainMinRadius = 0.04
	StainMaxRadius = 0.14

	// StainMinOpacity/MaxOpacity bound stain opacity.
	StainMinOpacity = 0.05
	StainMaxOpacity = 0.20

	// FleckMaxCenter is the +/- bound of fleck centers.
	FleckMaxCenter = 0.5

	// FleckMinSize/MaxSize bound fleck size.
	FleckMinSize = 0.3
	FleckMaxSize = 1.6

	// FleckMinOpacity/MaxOpacity bound fleck opacity.
	FleckMinOpacity = 0.08
	FleckMaxOpacity = 0.30
)
