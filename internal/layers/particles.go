package layers

import "math"

// ParticleTemplate is the immutable seed of one particle: the polar spawn
// position inside the spawn disk plus initial velocity, size, and lifespan.
//
// Positions are stored polar so the template is free of transcendental
// round-off; the runtime record derives cartesian coordinates once.
type ParticleTemplate struct {
	Theta    float64
	Radius   float64
	VX       float64
	VY       float64
	Size     float64
	Lifespan float64
}

// ParticleState is the mutable runtime record paired with a template by
// index. Only Particles.Update writes it.
type ParticleState struct {
	X      float64
	Y      float64
	VX     float64
	VY     float64
	Age    float64
	Active bool
	// Trail is a bounded FIFO of recent positions, most recent last.
	Trail [][2]float64
}

// Particles is the particle layer: a fixed-capacity pool whose active count
// each frame is floor(energy * capacity).
type Particles struct {
	templates []ParticleTemplate
	states    []ParticleState
	noise     NoiseField
	time      float64
}

// NewParticles generates the particle pool from the seeded source.
//
// Draw order is part of the edition's identity - do not reorder. The noise
// field steers particles at update time only; it contributes no draws here.
func NewParticles(r Rand, noise NoiseField) *Particles {
	p := &Particles{
		templates: make([]ParticleTemplate, ParticleCapacity),
		states:    make([]ParticleState, ParticleCapacity),
		noise:     noise,
	}
	for i := range p.templates {
		theta := r.Uniform(0, 2*math.Pi)
		// sqrt keeps the disk sampling area-uniform.
		radius := ParticleSpawnRadius * math.Sqrt(r.Float64())
		t := ParticleTemplate{
			Theta:    theta,
			Radius:   radius,
			VX:       r.Uniform(-ParticleMaxInitialSpeed, ParticleMaxInitialSpeed),
			VY:       r.Uniform(-ParticleMaxInitialSpeed, ParticleMaxInitialSpeed),
			Size:     r.Uniform(ParticleMinSize, ParticleMaxSize),
			Lifespan: r.Uniform(ParticleMinLifespan, ParticleMaxLifespan),
		}
		p.templates[i] = t
		p.states[i] = ParticleState{
			X:  radius * math.Cos(theta),
			Y:  radius * math.Sin(theta),
			VX: t.VX,
			VY: t.VY,
		}
	}
	return p
}

// Capacity returns the fixed pool size.
func (p *Particles) Capacity() int { return len(p.templates) }

// ActiveCount returns floor(energy * capacity), clamped to the pool.
func (p *Particles) ActiveCount(energy float64) int {
	if energy < 0 {
		energy = 0
	}
	n := int(energy * float64(len(p.templates)))
	if n > len(p.templates) {
		n = len(p.templates)
	}
	return n
}

// Update advances the pool by dt seconds at the given energy level.
//
// Active particles integrate velocity, steer along the coherent noise
// field (sampled at their position plus a time-varying third coordinate),
// damp, wrap radially past the rim, and record a bounded trail. Inactive
// particles are skipped in place - the pool never shrinks.
func (p *Particles) Update(dt, energy float64) {
	if dt <= 0 {
		return
	}
	p.time += dt
	active := p.ActiveCount(energy)
	for i := range p.states {
		st := &p.states[i]
		st.Active = i < active
		if !st.Active {
			continue
		}

		n := p.noise.Eval(st.X*ParticleNoiseScale, st.Y*ParticleNoiseScale, p.time*ParticleNoiseDrift)
		steer := n * 4 * math.Pi
		st.VX += math.Cos(steer) * ParticleSteerForce * dt
		st.VY += math.Sin(steer) * ParticleSteerForce * dt

		st.VX *= ParticleDamping
		st.VY *= ParticleDamping

		st.X += st.VX * dt
		st.Y += st.VY * dt

		if r := math.Hypot(st.X, st.Y); r > ParticleMaxRadius {
			// Radial wraparound: reappear just inside the opposite rim,
			// keeping heading intact.
			scale := ParticleMaxRadius * ParticleWrapScale / r
			st.X = -st.X * scale
			st.Y = -st.Y * scale
			st.Trail = st.Trail[:0]
		}

		st.Trail = append(st.Trail, [2]float64{st.X, st.Y})
		if len(st.Trail) > ParticleTrailLength {
			st.Trail = st.Trail[1:]
		}

		st.Age += dt
		if st.Age > p.templates[i].Lifespan {
			// Rebirth at the template spawn point keeps the pool's static
			// attributes immutable while recycling motion.
			t := p.templates[i]
			st.X = t.Radius * math.Cos(t.Theta)
			st.Y = t.Radius * math.Sin(t.Theta)
			st.VX = t.VX
			st.VY = t.VY
			st.Age = 0
			st.Trail = st.Trail[:0]
		}
	}
}

// TemplateAt returns the immutable template of particle i.
func (p *Particles) TemplateAt(i int) ParticleTemplate { return p.templates[i] }

// StateAt returns the runtime state of particle i.
func (p *Particles) StateAt(i int) ParticleState { return p.states[i] }

// Templates returns the full template arena, for snapshotting.
func (p *Particles) Templates() []ParticleTemplate {
	return append([]ParticleTemplate(nil), p.templates...)
}
