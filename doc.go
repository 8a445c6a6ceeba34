// Package spotlight renders an interactive spotlight effect over a static
// image for [Ebitengine].
//
// A dark overlay dims the image and a soft circular cutout opens over
// configured regions of interest when the pointer enters them, drifts
// toward the pointer once fully open, and closes again when the pointer
// leaves. A guided tour can visit every region in turn; any pointer
// movement ends it.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := spotlight.DefaultConfig()
//	cfg.Regions = []spotlight.RegionDef{{Name: "door", X: 0.3, Y: 0.3, R: 0.12}}
//	stage, err := spotlight.NewStage(cfg)
//	// ... handle err ...
//	stage.SetImage(img)
//	spotlight.Run(stage, spotlight.RunConfig{Title: "Tour", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.Update], [Stage.Draw] and [Stage.Layout] directly.
//
// # Regions
//
// Regions are defined as fractions of the surface ([RegionDef]) so they
// follow the image when the window resizes. [RegionsFromPixels] converts
// regions authored in pixels against the source image. Hit testing checks
// regions in configuration order and the first match wins.
//
// # Animation
//
// Every tick the [Overlay] opacity and the [Beam] position and radius move
// a fixed fraction of the way to their targets. The beam opens faster than
// it closes, and only follows the pointer once it has opened past
// [FollowGate] of the region radius.
//
// # Guided tour
//
// [Stage.PlaySequence] opens each region for the dwell time and closes it
// for the transition time. Pointer movement cancels the run at once and
// hands control back to the pointer.
//
// [Ebitengine]: https://ebitengine.org
package spotlight
