package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/soundtrack"
)

const (
	charWidth = 6 // debug font advance

	navY      = 12
	navHeight = 24
	navPad    = 10

	introCaption = "scroll to unfold"
)

var (
	textPanel   = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	navActive   = color.RGBA{R: 100, G: 120, B: 160, A: 220}
	navInactive = color.RGBA{R: 20, G: 25, B: 35, A: 200}
	navBorder   = color.RGBA{R: 150, G: 170, B: 200, A: 255}
)

func inButton(x, y int) bool {
	return x >= config.ButtonX && x <= config.ButtonX+config.ButtonWidth &&
		y >= config.ButtonY && y <= config.ButtonY+config.ButtonHeight
}

type navItem struct {
	name string
	x, w int
}

// navItems lays the variant names out right-aligned along the top edge.
func (g *Game) navItems() []navItem {
	items := make([]navItem, len(config.Variants))
	x := g.width
	for i := len(config.Variants) - 1; i >= 0; i-- {
		name := config.Variants[i]
		w := len(name)*charWidth + 2*navPad
		x -= w + navPad
		items[i] = navItem{name: name, x: x, w: w}
	}
	return items
}

// navAt returns the variant under (x, y) while the nav strip is shown.
func (g *Game) navAt(x, y int) (string, bool) {
	if !g.ctrl.Mapper().NavVisible() || y < navY || y > navY+navHeight {
		return "", false
	}
	for _, it := range g.navItems() {
		if x >= it.x && x <= it.x+it.w {
			return it.name, true
		}
	}
	return "", false
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	g.drawButton(screen)
	if g.ctrl.Mapper().NavVisible() {
		g.drawNav(screen)
	}
	if g.ctrl.Mapper().IntroVisible(g.ctrl.Elapsed()) {
		x := (g.width - len(introCaption)*charWidth) / 2
		y := g.height * 3 / 4
		vector.DrawFilledRect(screen, float32(x-8), float32(y-6), float32(len(introCaption)*charWidth+16), 28, textPanel, false)
		ebitenutil.DebugPrintAt(screen, introCaption, x, y)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, navBorder, false)

	text := "Soundtrack"
	if g.choosing {
		text = "Choosing..."
	}
	textX := config.ButtonX + (config.ButtonWidth-len(text)*charWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawNav(screen *ebiten.Image) {
	for _, it := range g.navItems() {
		bg := navInactive
		if it.name == g.variant {
			bg = navActive
		}
		vector.DrawFilledRect(screen, float32(it.x), navY, float32(it.w), navHeight, bg, false)
		vector.StrokeRect(screen, float32(it.x), navY, float32(it.w), navHeight, 1, navBorder, false)
		ebitenutil.DebugPrintAt(screen, it.name, it.x+navPad, navY+4)
	}
}

// status is the one-line help shown in the top-left corner.
func (g *Game) status() string {
	s := fmt.Sprintf("%s %3.0f%%", g.variant, g.ctrl.Progress()*100)
	if name, pos, total, ok := g.player.Status(); ok {
		state := "playing"
		if g.player.Paused() {
			state = "paused"
		}
		s += fmt.Sprintf(" | %s %s %s", state, name, soundtrack.FormatPosition(pos, total))
	} else {
		s += " | Space: pause soundtrack, Tab: next variant"
	}
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}
