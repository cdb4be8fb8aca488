package impact

// Vec3 is a position or velocity in grid units. Z is depth: 0 is the outer
// face of the surface and increasing Z moves into it.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Kind selects how a particle is drawn. It has no effect on the physics.
type Kind int

const (
	Normal Kind = iota
	Special
)

func (k Kind) String() string {
	if k == Special {
		return "special"
	}
	return "normal"
}

// Particle is a point projectile travelling toward the surface.
type Particle struct {
	Pos      Vec3    // position
	Vel      Vec3    // added to Pos every step spent inside the surface
	Size     float64 // damage capacity and render scale
	Fragment bool    // set once the particle has fragmented or was spawned as a fragment
	Kind     Kind
}

// InSurface reports whether the particle has reached a surface of the given
// thickness.
func (p *Particle) InSurface(thickness float64) bool {
	return p.Pos.Z < thickness
}
