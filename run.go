package spotlight

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD draws FPS and beam state in the top-left corner.
	ShowHUD bool
	// RenderScale sets the backing resolution relative to the displayed
	// image size. Zero means 1.
	RenderScale float64
	// Debug enables stderr logging of transitions and frame timings.
	Debug bool
}

// Run opens a resizable window and drives stage until the window closes.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "spotlight"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	stage.ShowHUD = cfg.ShowHUD
	stage.SetRenderScale(cfg.RenderScale)
	stage.SetDebugMode(cfg.Debug)
	defer stage.Close()

	return ebiten.RunGame(&game{stage: stage})
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage *Stage
}

func (g *game) Update() error {
	g.stage.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return g.stage.Layout(outsideW, outsideH)
}
