// Package game hosts a mandala in an ebiten window: a scrollable virtual
// page, a soundtrack button and the HUD.
package game

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/mandala"
	"github.com/iburimskiy/mandala-visualization/internal/soundtrack"
)

type pick struct {
	path string
	err  error
}

// Game implements ebiten.Game.
type Game struct {
	cfg     *config.Config
	seed    int64
	canvas  *Canvas
	ctrl    *mandala.Controller
	page    *mandala.Page
	player  *soundtrack.Player
	variant string

	width, height int

	// background pulse
	time  float64
	level float64

	// button state
	buttonHovered bool
	buttonPressed bool
	choosing      bool
	picked        chan pick

	lastErr error
}

// New builds a game running variant at the default window size. player may
// be shared with other hosts; the game does not close it.
func New(cfg *config.Config, variant string, seed int64, player *soundtrack.Player) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		seed:   seed,
		canvas: NewCanvas(),
		page:   mandala.NewPage(),
		player: player,
		width:  config.WindowWidth,
		height: config.WindowHeight,
		picked: make(chan pick, 1),
	}
	if err := g.start(variant); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) viewport() mandala.Viewport {
	return mandala.Viewport{Width: float64(g.width), Height: float64(g.height)}
}

func (g *Game) start(variant string) error {
	v, err := mandala.New(variant, g.cfg)
	if err != nil {
		return err
	}
	if g.ctrl != nil {
		g.ctrl.Teardown()
	}
	g.variant = variant
	vp := g.viewport()
	g.page.SetHeight(vp.Height)
	g.ctrl = mandala.NewController(v, g.canvas, g.seed)
	g.ctrl.Scroll(g.page.Offset())
	g.ctrl.Init(vp)
	return nil
}

// Close tears the running mandala down.
func (g *Game) Close() {
	g.ctrl.Teardown()
}

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()

	// Handle button interactions
	g.buttonHovered = inButton(mouseX, mouseY)
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.chooseSoundtrack()
		} else if name, ok := g.navAt(mouseX, mouseY); ok && name != g.variant {
			g.switchTo(name)
		}
		g.buttonPressed = false
	}
	g.collectPick()

	// Scrolling
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scroll(-dy * config.WheelStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.scroll(config.KeyStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.scroll(-config.KeyStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.scroll(g.page.Height())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.scroll(-g.page.Height())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) && g.page.Top() {
		g.ctrl.Scroll(g.page.Offset())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) && g.page.Bottom() {
		g.ctrl.Scroll(g.page.Offset())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.switchTo(config.NextVariant(g.variant))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.tick()
	return nil
}

// tick advances one frame of the mandala and the soundtrack pulse.
func (g *Game) tick() {
	g.time += 1.0 / config.FrameRate
	g.level = g.player.Level()
	g.ctrl.Frame(config.FrameInterval)
}

func (g *Game) scroll(delta float64) {
	if g.page.By(delta) {
		g.ctrl.Scroll(g.page.Offset())
	}
}

func (g *Game) switchTo(name string) {
	log.Printf("[Game] switching to %s", name)
	if err := g.start(name); err != nil {
		g.lastErr = err
		return
	}
	ebiten.SetWindowTitle(Title(name))
}

// Title is the window title for variant.
func Title(variant string) string {
	return "Mandala: " + variant + " - scroll to unfold, Tab: next, Esc/Q: quit"
}

// chooseSoundtrack opens the file dialog off the game loop; the result is
// picked up by collectPick.
func (g *Game) chooseSoundtrack() {
	if g.choosing {
		return
	}
	g.choosing = true
	go func() {
		path, err := soundtrack.Choose()
		g.picked <- pick{path: path, err: err}
	}()
}

func (g *Game) collectPick() {
	select {
	case p := <-g.picked:
		g.choosing = false
		g.lastErr = nil
		switch {
		case p.err != nil:
			g.lastErr = p.err
		case p.path != "":
			if err := g.player.Load(p.path); err != nil {
				g.lastErr = err
			}
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.canvas.Draw(screen)
	g.drawHUD(screen)
}

// drawBackground paints a slow vertical gradient that brightens with the
// soundtrack level.
func (g *Game) drawBackground(screen *ebiten.Image) {
	const band = 4
	boost := 1 + 2*g.level
	for y := 0; y < g.height; y += band {
		ratio := float64(y) / float64(g.height)
		r := uint8(math.Min(255, (10+8*math.Sin(g.time*0.5+ratio*math.Pi))*boost))
		gv := uint8(math.Min(255, (12+6*math.Cos(g.time*0.3+ratio*math.Pi))*boost))
		b := uint8(math.Min(255, (20+10*math.Sin(g.time*0.7+ratio*math.Pi))*boost))
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), band, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

// Layout follows the window size and regenerates the mandala when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.width, g.height
}

func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == g.width && h == g.height) {
		return
	}
	g.width, g.height = w, h
	vp := g.viewport()
	g.page.SetHeight(vp.Height)
	g.ctrl.Scroll(g.page.Offset())
	g.ctrl.Resize(vp)
}
