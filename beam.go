package spotlight

// Beam policies.
const (
	// OverscanFactor enlarges the target radius so the soft edge clears the
	// region boundary.
	OverscanFactor = 1.1
	// FollowGate is the fraction of the region radius the beam must exceed
	// before it starts following the pointer.
	FollowGate = 0.9
	// FollowDamping pulls the follow point from the pointer back toward the
	// region center. 0 follows the pointer exactly, 1 never leaves the center.
	FollowDamping = 0.8
	// HideEpsilon is the radius in pixels below which a closing beam is hidden.
	HideEpsilon = 1.0
)

// Phase is the beam's implicit state, derived from its fields.
type Phase uint8

const (
	PhaseHidden       Phase = iota // not visible, radius ~0
	PhaseActivating                // opening over a region, locked to its center
	PhaseTracking                  // open, following the damped pointer
	PhaseDeactivating              // closing toward radius 0
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseActivating:
		return "activating"
	case PhaseTracking:
		return "tracking"
	case PhaseDeactivating:
		return "deactivating"
	default:
		return "unknown"
	}
}

// Beam is the animated spotlight cutout: current and target position and
// radius, eased toward each other once per tick.
type Beam struct {
	X, Y, Radius                   float64
	TargetX, TargetY, TargetRadius float64
	Visible                        bool

	// EasePos eases position; EaseRadiusUp and EaseRadiusDown ease the radius
	// while opening and closing.
	EasePos, EaseRadiusUp, EaseRadiusDown float64

	active     *Region
	pointer    Vec2
	hasPointer bool
}

// NewBeam returns a hidden beam with the given easing rates.
func NewBeam(easePos, easeUp, easeDown float64) *Beam {
	return &Beam{EasePos: easePos, EaseRadiusUp: easeUp, EaseRadiusDown: easeDown}
}

// Active returns the region the beam is attached to, or nil.
func (b *Beam) Active() *Region {
	return b.active
}

// Pointer returns the pointer-follow target and whether one is set.
func (b *Beam) Pointer() (Vec2, bool) {
	return b.pointer, b.hasPointer
}

// Reset hides the beam at (cx, cy) with radius 0 and drops all targets.
func (b *Beam) Reset(cx, cy float64) {
	b.X, b.Y, b.Radius = cx, cy, 0
	b.TargetX, b.TargetY, b.TargetRadius = cx, cy, 0
	b.Visible = false
	b.active = nil
	b.hasPointer = false
	b.pointer = Vec2{}
}

// Activate attaches the beam to r and opens it to the overscanned radius.
// Entering r from hidden or from another region snaps the position to r's
// center so the beam never slides in from an unrelated spot.
func (b *Beam) Activate(r *Region, pointer Vec2) {
	if !b.Visible || b.active != r {
		b.X, b.Y = r.Center.X, r.Center.Y
	}
	b.attach(r, pointer)
}

// Present attaches the beam to r centered, with the pointer target on the
// center so follow has no effect. Used by the sequence player.
func (b *Beam) Present(r *Region) {
	b.X, b.Y = r.Center.X, r.Center.Y
	b.attach(r, r.Center)
}

func (b *Beam) attach(r *Region, pointer Vec2) {
	b.active = r
	b.TargetX, b.TargetY = r.Center.X, r.Center.Y
	b.TargetRadius = r.Radius * OverscanFactor
	b.Visible = true
	b.pointer = pointer
	b.hasPointer = true
}

// Deactivate starts closing the beam. Visible and the active region persist
// until the radius has decayed, so the close animates around a known center.
func (b *Beam) Deactivate() {
	b.TargetRadius = 0
}

// Tick advances radius and position one frame.
func (b *Beam) Tick() {
	if b.TargetRadius > b.Radius {
		b.Radius = approach(b.Radius, b.TargetRadius, b.EaseRadiusUp)
	} else {
		b.Radius = approach(b.Radius, b.TargetRadius, b.EaseRadiusDown)
	}

	if r := b.active; r != nil {
		c := r.Center
		if b.following() {
			b.TargetX = b.pointer.X + (c.X-b.pointer.X)*FollowDamping
			b.TargetY = b.pointer.Y + (c.Y-b.pointer.Y)*FollowDamping
			b.X = approach(b.X, b.TargetX, b.EasePos)
			b.Y = approach(b.Y, b.TargetY, b.EasePos)
		} else {
			b.X = approach(b.X, c.X, b.EasePos)
			b.Y = approach(b.Y, c.Y, b.EasePos)
		}
	}

	if b.TargetRadius == 0 && b.Radius < HideEpsilon {
		b.Visible = false
		b.active = nil
	}
}

// following reports whether the pointer-follow gate is open.
func (b *Beam) following() bool {
	return b.Visible && b.hasPointer && b.active != nil &&
		b.Radius > b.active.Radius*FollowGate
}

// Phase derives the beam's current state.
func (b *Beam) Phase() Phase {
	switch {
	case !b.Visible:
		return PhaseHidden
	case b.TargetRadius == 0:
		return PhaseDeactivating
	case b.following():
		return PhaseTracking
	default:
		return PhaseActivating
	}
}
