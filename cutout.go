package spotlight

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Cutout gradient geometry. Inside CutoutInnerRatio*radius the overlay is
// fully removed; from there to the rim the erase amount passes through the
// stops 0% -> 1, 70% -> 0.5, 100% -> 0.
const (
	CutoutInnerRatio = 0.5
	cutoutMidStop    = 0.7
	cutoutMidErase   = 0.5
	minDiscSize      = 16
)

// Layer is the offscreen overlay texture: a dim fill with a soft circular
// hole erased at the beam position. Composite it over the image with
// source-over blending.
type Layer struct {
	image     *ebiten.Image
	w, h      int
	falloff   ease.TweenFunc
	discCache map[int]*ebiten.Image // keyed by power-of-two texture size
	imgOp     ebiten.DrawImageOptions
}

// NewLayer creates an unsized layer. falloff shapes the gradient between
// stops; nil means ease.Linear.
func NewLayer(falloff ease.TweenFunc) *Layer {
	if falloff == nil {
		falloff = ease.Linear
	}
	return &Layer{falloff: falloff}
}

// Resize sets the surface size. The texture is reallocated lazily on the
// next Redraw; non-positive sizes leave the layer without one.
func (l *Layer) Resize(w, h int) {
	if w == l.w && h == l.h {
		return
	}
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
	l.w, l.h = w, h
}

// SetFalloff replaces the gradient curve and drops the cached discs.
func (l *Layer) SetFalloff(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	l.falloff = fn
	for _, img := range l.discCache {
		img.Deallocate()
	}
	l.discCache = nil
}

// Image returns the layer texture, or nil before the first Redraw of a
// sized layer.
func (l *Layer) Image() *ebiten.Image {
	return l.image
}

// Size returns the layer dimensions in pixels.
func (l *Layer) Size() (int, int) {
	return l.w, l.h
}

// Redraw clears the texture, fills it with the overlay and erases the beam's
// cutout. Beams at or below HideEpsilon draw nothing.
func (l *Layer) Redraw(o *Overlay, b *Beam) {
	if l.w <= 0 || l.h <= 0 {
		return
	}
	if l.image == nil {
		l.image = ebiten.NewImage(l.w, l.h)
	}
	l.image.Clear()
	o.Draw(l.image)

	if b.Radius <= HideEpsilon {
		return
	}

	disc := l.disc(b.Radius)
	size := float64(disc.Bounds().Dx())
	scale := b.Radius * 2 / size

	op := &l.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(b.X-b.Radius, b.Y-b.Radius)
	op.ColorScale.Reset()
	op.Filter = ebiten.FilterLinear
	op.Blend = BlendErase.EbitenBlend()
	l.image.DrawImage(disc, op)
}

// PrepareRadius pre-generates the disc texture used for radius r.
func (l *Layer) PrepareRadius(r float64) {
	l.disc(r)
}

// disc returns a cached cutout texture large enough for radius r. Textures
// are bucketed to powers of two and scaled at draw time.
func (l *Layer) disc(r float64) *ebiten.Image {
	key := discSize(r)
	if l.discCache == nil {
		l.discCache = make(map[int]*ebiten.Image)
	}
	if img, ok := l.discCache[key]; ok {
		return img
	}
	img := ebiten.NewImage(key, key)
	img.WritePixels(discPixels(key, l.falloff))
	l.discCache[key] = img
	return img
}

// Dispose releases the layer texture and cached discs.
func (l *Layer) Dispose() {
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
	for _, img := range l.discCache {
		img.Deallocate()
	}
	l.discCache = nil
	l.w, l.h = 0, 0
}

// discSize returns the power-of-two texture edge for a cutout of radius r.
func discSize(r float64) int {
	want := int(math.Ceil(r * 2))
	size := minDiscSize
	for size < want {
		size <<= 1
	}
	return size
}

// discPixels renders a size x size premultiplied white disc whose alpha is
// the erase amount at each pixel.
func discPixels(size int, fn ease.TweenFunc) []byte {
	pix := make([]byte, size*size*4)
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			a := uint8(math.Round(cutoutErase(math.Hypot(dx, dy)/radius, fn) * 255))
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}

// cutoutErase returns how much of the overlay is removed at normalized
// distance d from the beam center (0 center, 1 rim).
func cutoutErase(d float64, fn ease.TweenFunc) float64 {
	switch {
	case d <= CutoutInnerRatio:
		return 1
	case d >= 1:
		return 0
	}
	t := (d - CutoutInnerRatio) / (1 - CutoutInnerRatio)
	if t <= cutoutMidStop {
		return interpolateStop(fn, t/cutoutMidStop, 1, cutoutMidErase)
	}
	return interpolateStop(fn, (t-cutoutMidStop)/(1-cutoutMidStop), cutoutMidErase, 0)
}

func interpolateStop(fn ease.TweenFunc, t, from, to float64) float64 {
	return clamp01(float64(fn(float32(t), float32(from), float32(to-from), 1)))
}
