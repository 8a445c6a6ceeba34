package spotlight

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the top-level object that owns the regions, the overlay and beam
// animation state, the offscreen layer and the sequence player. The tick
// clock (Update) and a running sequence both mutate the animation state;
// Stage serializes them and tracks which one is the driver.
type Stage struct {
	mu sync.Mutex

	cfg     Config
	overlay *Overlay
	beam    *Beam
	ctrl    *Controller
	layer   *Layer
	seq     *Sequence
	driver  Driver
	// tourPending is set when a tour is requested and cleared by pointer
	// moves, reloads and stops that happen before the tour takes over.
	tourPending bool

	background  *ebiten.Image
	screenW     int
	screenH     int
	renderScale float64
	bgOp        ebiten.DrawImageOptions
	layerOp     ebiten.DrawImageOptions

	ctx    context.Context
	cancel context.CancelFunc

	elapsed       float64
	autoPlayFired bool

	debug    bool
	lastTick time.Duration
	// ShowHUD draws FPS and beam state in the top-left corner.
	ShowHUD bool
	hud     *ebiten.Image
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	injectQueue []syntheticEvent
	testRunner  *TestRunner
	pointer     pointerState
	touchBuf    []ebiten.TouchID
}

// NewStage validates cfg and creates an unsized stage. Rendering and
// pointer handling are no-ops until the first Layout or Resize.
func NewStage(cfg Config) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spotlight: %w", err)
	}
	s := &Stage{
		cfg:           cfg,
		overlay:       NewOverlay(cfg.OverlayColor.Color(), cfg.EaseOverlay),
		beam:          NewBeam(cfg.EasePos, cfg.EaseRadiusUp, cfg.EaseRadiusDown),
		layer:         NewLayer(cfg.FalloffFunc()),
		renderScale:   1,
		ScreenshotDir: "screenshots",
	}
	s.ctrl = NewController(cfg.RegionDefs(), s.overlay, s.beam, cfg.DimAlpha)
	s.seq = NewSequence(s)
	s.ctrl.OnPointerMove(func(PointerContext) { s.tourPending = false })
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Config returns the active configuration.
func (s *Stage) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetImage sets the static image the overlay is drawn over. The image is
// fitted into the screen preserving its aspect ratio.
func (s *Stage) SetImage(img *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = img
	if s.screenW > 0 && s.screenH > 0 {
		s.layoutLocked(s.screenW, s.screenH)
	}
}

// SetRenderScale sets the backing resolution relative to the displayed size.
// Values <= 0 are treated as 1.
func (s *Stage) SetRenderScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale <= 0 {
		scale = 1
	}
	s.renderScale = scale
	if s.screenW > 0 && s.screenH > 0 {
		s.layoutLocked(s.screenW, s.screenH)
	}
}

// SetEventSink sets the optional selection bridge.
func (s *Stage) SetEventSink(sink EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetEventSink(sink)
}

// OnSelect registers a callback fired when a region is clicked. Callbacks
// run on the game loop with the stage locked and must not call back into
// the Stage.
func (s *Stage) OnSelect(fn func(SelectionEvent)) CallbackHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.OnSelect(fn)
}

// SetDebugMode enables or disables debug mode. When enabled, state
// transitions and per-frame timing stats are logged to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.mu.Lock()
	s.debug = enabled
	s.mu.Unlock()
	globalDebug.Store(enabled)
}

// Update processes input and advances the overlay and beam one tick.
func (s *Stage) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.advance(1.0 / float64(ebiten.TPS()))

	if s.debug {
		s.lastTick = time.Since(t0)
	}
}

// advance runs one animation tick of dt seconds. Unsized stages do not
// animate.
func (s *Stage) advance(dt float64) {
	if !s.ctrl.sized() {
		return
	}
	s.overlay.Tick()
	s.beam.Tick()
	s.maybeAutoPlay(dt)
}

// maybeAutoPlay starts the tour once StartDelay has elapsed on a sized stage.
func (s *Stage) maybeAutoPlay(dt float64) {
	if !s.cfg.Sequence.AutoPlay || s.autoPlayFired {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.cfg.Sequence.StartDelay.Seconds() {
		return
	}
	s.autoPlayFired = true
	s.startSequenceLocked()
}

// Draw renders the image, the overlay layer and the optional HUD.
func (s *Stage) Draw(screen *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	vp := s.ctrl.Viewport()
	if s.background != nil && !vp.Empty() {
		b := s.background.Bounds()
		op := &s.bgOp
		op.GeoM.Reset()
		op.GeoM.Scale(vp.Width/float64(b.Dx()), vp.Height/float64(b.Dy()))
		op.GeoM.Translate(vp.X, vp.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.background, op)
	}

	s.layer.Redraw(s.overlay, s.beam)

	if s.debug {
		stats.redrawTime = time.Since(t0)
		t0 = time.Now()
	}

	if img := s.layer.Image(); img != nil && !vp.Empty() {
		lw, lh := s.layer.Size()
		op := &s.layerOp
		op.GeoM.Reset()
		op.GeoM.Scale(vp.Width/float64(lw), vp.Height/float64(lh))
		op.GeoM.Translate(vp.X, vp.Y)
		op.Filter = ebiten.FilterLinear
		op.Blend = BlendNormal.EbitenBlend()
		screen.DrawImage(img, op)
	}

	if s.debug {
		stats.compositeTime = time.Since(t0)
		stats.tickTime = s.lastTick
		stats.phase = s.beam.Phase()
		stats.alpha = s.overlay.Alpha
		s.debugLog(stats)
	}

	if s.ShowHUD {
		s.drawHUD(screen)
	}
	s.flushScreenshots(screen)
}

// Layout fits the image into an outsideW x outsideH screen and resizes the
// surface when the fitted size changes.
func (s *Stage) Layout(outsideW, outsideH int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if outsideW != s.screenW || outsideH != s.screenH {
		s.layoutLocked(outsideW, outsideH)
	}
	return outsideW, outsideH
}

func (s *Stage) layoutLocked(screenW, screenH int) {
	s.screenW, s.screenH = screenW, screenH
	vp := fitRect(s.background, float64(screenW), float64(screenH))
	s.ctrl.SetViewport(vp)
	w := int(math.Round(vp.Width * s.renderScale))
	h := int(math.Round(vp.Height * s.renderScale))
	cw, ch := s.ctrl.SurfaceSize()
	if float64(w) != cw || float64(h) != ch {
		s.resizeLocked(w, h)
	}
}

// fitRect returns the largest rectangle with img's aspect ratio centered in
// a w x h screen. Without an image the whole screen is used.
func fitRect(img *ebiten.Image, w, h float64) Rect {
	if img == nil || w <= 0 || h <= 0 {
		return Rect{Width: math.Max(w, 0), Height: math.Max(h, 0)}
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return Rect{Width: w, Height: h}
	}
	scale := math.Min(w/iw, h/ih)
	fw, fh := iw*scale, ih*scale
	return Rect{X: (w - fw) / 2, Y: (h - fh) / 2, Width: fw, Height: fh}
}

// Resize sets the backing surface size directly. Regions are re-resolved
// and the beam resets to the surface midpoint.
func (s *Stage) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizeLocked(w, h)
}

func (s *Stage) resizeLocked(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.ctrl.Resize(float64(w), float64(h))
	s.layer.Resize(w, h)
	debugf("resize surface %dx%d", w, h)
}

// PointerMove feeds a pointer move at device coordinates.
func (s *Stage) PointerMove(x, y float64) *Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.PointerMove(x, y)
}

// PointerLeave feeds a pointer leave.
func (s *Stage) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.PointerLeave()
}

// Click feeds a click at device coordinates and returns the selected region.
func (s *Stage) Click(x, y float64) *Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Click(x, y)
}

// PlaySequence plays the guided tour over all regions with the configured
// timings. It blocks until the run ends.
func (s *Stage) PlaySequence(ctx context.Context) PlayResult {
	dwell, transition := s.requestTour()
	return s.seq.Play(ctx, dwell, transition)
}

// requestTour marks a tour as pending and returns its timings. Regions are
// taken when the tour takes over.
func (s *Stage) requestTour() (dwell, transition time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tourPending = true
	return s.cfg.Sequence.Dwell, s.cfg.Sequence.Transition
}

// StartSequence plays the tour on a new goroutine bound to the stage's
// lifetime.
func (s *Stage) StartSequence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startSequenceLocked()
}

func (s *Stage) startSequenceLocked() {
	if s.seq.IsPlaying() {
		return
	}
	go s.PlaySequence(s.ctx)
}

// StopSequence cancels a running tour.
func (s *Stage) StopSequence() {
	s.mu.Lock()
	s.tourPending = false
	s.mu.Unlock()
	s.seq.Stop()
}

// IsPlaying reports whether a tour is running.
func (s *Stage) IsPlaying() bool {
	return s.seq.IsPlaying()
}

// Reload swaps in a new configuration at runtime. A running tour is
// cancelled and the beam is reset.
func (s *Stage) Reload(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("spotlight: reload: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.driver = DriverPointer
	s.tourPending = false
	s.seq.Stop()

	s.cfg = cfg
	s.overlay.Ease = cfg.EaseOverlay
	s.overlay.Color = cfg.OverlayColor.Color()
	s.overlay.SetTarget(0)
	s.beam.EasePos = cfg.EasePos
	s.beam.EaseRadiusUp = cfg.EaseRadiusUp
	s.beam.EaseRadiusDown = cfg.EaseRadiusDown
	s.layer.SetFalloff(cfg.FalloffFunc())
	s.ctrl.SetRegions(cfg.RegionDefs(), cfg.DimAlpha)
	debugf("reloaded config (%d regions)", len(s.ctrl.Regions()))
	return nil
}

// Close cancels any running tour and releases GPU resources.
func (s *Stage) Close() {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layer.Dispose()
	if s.hud != nil {
		s.hud.Deallocate()
		s.hud = nil
	}
}

// --- sequenceHost ---

func (s *Stage) claim(abort context.CancelFunc) ([]*Region, func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tourPending {
		debugf("sequence superseded before start")
		return nil, nil, false
	}
	s.tourPending = false
	s.driver = DriverSequence
	h := s.ctrl.OnPointerMove(func(PointerContext) {
		// Pointer input always wins over the tour.
		s.driver = DriverPointer
		abort()
	})
	regions := append([]*Region(nil), s.ctrl.Regions()...)
	return regions, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		h.Remove()
		s.driver = DriverPointer
	}, true
}

func (s *Stage) present(r *Region) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver != DriverSequence {
		return false
	}
	s.beam.Present(r)
	s.overlay.SetTarget(s.cfg.DimAlpha)
	debugf("sequence presents region %d (%s)", r.Index, r.Name)
	return true
}

func (s *Stage) conceal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver != DriverSequence {
		return false
	}
	s.beam.Deactivate()
	s.overlay.SetTarget(0)
	return true
}

// --- Introspection ---

// State is a snapshot of the stage's animation state.
type State struct {
	Phase        Phase
	X, Y         float64
	Radius       float64
	TargetRadius float64
	Visible      bool
	Alpha        float64
	TargetAlpha  float64
	// Active is the index of the beam's region, or -1.
	Active  int
	Driver  Driver
	Playing bool
}

// State returns a snapshot of the current animation state.
func (s *Stage) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Stage) stateLocked() State {
	st := State{
		Phase:        s.beam.Phase(),
		X:            s.beam.X,
		Y:            s.beam.Y,
		Radius:       s.beam.Radius,
		TargetRadius: s.beam.TargetRadius,
		Visible:      s.beam.Visible,
		Alpha:        s.overlay.Alpha,
		TargetAlpha:  s.overlay.TargetAlpha,
		Active:       -1,
		Driver:       s.driver,
		Playing:      s.seq.IsPlaying(),
	}
	if r := s.beam.Active(); r != nil {
		st.Active = r.Index
	}
	return st
}

// Regions returns a copy of the resolved regions.
func (s *Stage) Regions() []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Region, len(s.ctrl.Regions()))
	for i, r := range s.ctrl.Regions() {
		out[i] = *r
	}
	return out
}
