package spotlight

import "math"

// RegionDef is a resolution-independent region definition. X and R are
// fractions of the surface width, Y is a fraction of the surface height.
// The radius scales with width so circles stay circular on resize.
type RegionDef struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	R    float64 `yaml:"r"`
}

// PixelRegion is a region authored in pixels against the source image.
type PixelRegion struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	R    float64 `yaml:"r"`
}

// RegionsFromPixels converts pixel-authored regions to fractions of an
// imgW x imgH image. The radius is taken relative to the width.
func RegionsFromPixels(points []PixelRegion, imgW, imgH float64) []RegionDef {
	defs := make([]RegionDef, len(points))
	if imgW <= 0 || imgH <= 0 {
		return defs
	}
	for i, p := range points {
		defs[i] = RegionDef{
			Name: p.Name,
			X:    p.X / imgW,
			Y:    p.Y / imgH,
			R:    p.R / imgW,
		}
	}
	return defs
}

// Region is a circular area of interest in surface pixels. Center and Radius
// are recomputed from Def whenever the surface resizes.
type Region struct {
	Index  int
	Name   string
	Def    RegionDef
	Center Vec2
	Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (r *Region) Contains(x, y float64) bool {
	return math.Hypot(x-r.Center.X, y-r.Center.Y) <= r.Radius
}

// resolve converts Def to absolute pixels for a w x h surface.
func (r *Region) resolve(w, h float64) {
	r.Center = Vec2{X: r.Def.X * w, Y: r.Def.Y * h}
	r.Radius = r.Def.R * w
}

// newRegions builds unresolved regions from their definitions, preserving
// configuration order.
func newRegions(defs []RegionDef) []*Region {
	regions := make([]*Region, len(defs))
	for i, d := range defs {
		regions[i] = &Region{Index: i, Name: d.Name, Def: d}
	}
	return regions
}

// hitTest returns the first region containing (x, y) in configuration order,
// or nil. Overlapping regions resolve to the earliest one.
func hitTest(regions []*Region, x, y float64) *Region {
	for _, r := range regions {
		if r.Contains(x, y) {
			return r
		}
	}
	return nil
}
