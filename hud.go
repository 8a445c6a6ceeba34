package spotlight

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudWidth  = 180
	hudHeight = 64
)

// drawHUD prints FPS/TPS and the beam state in the top-left corner.
// Called from Draw with the stage lock held.
func (s *Stage) drawHUD(screen *ebiten.Image) {
	if s.hud == nil {
		s.hud = ebiten.NewImage(hudWidth, hudHeight)
	}
	st := s.stateLocked()
	active := hudRegionLabel(s.ctrl.Regions(), st.Active)

	s.hud.Clear()
	// Semi-transparent background for readability
	s.hud.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(s.hud, fmt.Sprintf(
		"FPS: %.1f TPS: %.1f\nphase: %s\nregion: %s\ndriver: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), st.Phase, active, st.Driver))
	screen.DrawImage(s.hud, nil)
}

// hudRegionLabel formats the active region as "index name", or "-" when no
// region is active. An index past the current regions shows the index only.
func hudRegionLabel(regions []*Region, active int) string {
	if active < 0 {
		return "-"
	}
	label := fmt.Sprintf("%d", active)
	if active < len(regions) && regions[active].Name != "" {
		label += " " + regions[active].Name
	}
	return label
}
