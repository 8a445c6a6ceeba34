package spotlight

import "github.com/hajimehoshi/ebiten/v2"

// Overlay is the dimming layer's opacity, eased toward a target every tick.
type Overlay struct {
	Alpha       float64
	TargetAlpha float64
	// Ease is the fraction of the remaining distance covered per tick, in (0, 1].
	Ease  float64
	Color Color
}

// NewOverlay returns a fully transparent overlay of the given color.
func NewOverlay(c Color, ease float64) *Overlay {
	return &Overlay{Ease: ease, Color: c}
}

// SetTarget stores the opacity the overlay eases toward. Alpha is unchanged
// until the next Tick.
func (o *Overlay) SetTarget(alpha float64) {
	o.TargetAlpha = clamp01(alpha)
}

// Tick advances Alpha one step toward TargetAlpha. It never snaps.
func (o *Overlay) Tick() {
	o.Alpha = approach(o.Alpha, o.TargetAlpha, o.Ease)
}

// Draw fills dst with the overlay color at the current opacity.
func (o *Overlay) Draw(dst *ebiten.Image) {
	dst.Fill(o.Color.WithAlpha(clamp01(o.Alpha) * o.Color.A).RGBA())
}
