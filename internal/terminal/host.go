// Package terminal runs a mandala inside a tcell screen.
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/mandala"
	"github.com/iburimskiy/mandala-visualization/internal/render"
)

// Host owns the screen, the controller and the virtual page.
type Host struct {
	cfg     *config.Config
	seed    int64
	screen  tcell.Screen
	term    *render.Term
	ctrl    *mandala.Controller
	page    *mandala.Page
	variant string

	cols, rows int
	last       time.Time
}

// New prepares a host for variant on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, cfg *config.Config, variant string, seed int64) (*Host, error) {
	cols, rows := screen.Size()
	h, err := newHost(cfg, variant, seed, cols, rows)
	if err != nil {
		return nil, err
	}
	h.screen = screen
	return h, nil
}

func newHost(cfg *config.Config, variant string, seed int64, cols, rows int) (*Host, error) {
	h := &Host{
		cfg:  cfg,
		seed: seed,
		term: render.NewTerm(),
		page: mandala.NewPage(),
		cols: cols,
		rows: rows,
	}
	if err := h.start(variant); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) viewport() mandala.Viewport {
	return render.TermViewport(h.cols, h.rows)
}

func (h *Host) start(variant string) error {
	v, err := mandala.New(variant, h.cfg)
	if err != nil {
		return err
	}
	if h.ctrl != nil {
		h.ctrl.Teardown()
	}
	h.variant = variant
	vp := h.viewport()
	h.page.SetHeight(vp.Height)
	h.ctrl = mandala.NewController(v, h.term, h.seed)
	h.ctrl.Scroll(h.page.Offset())
	h.ctrl.Init(vp)
	return nil
}

// Run drives the frame loop until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.ctrl.Teardown()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()
	h.last = time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			quit, err := h.handle(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case now := <-ticker.C:
			h.ctrl.Frame(now.Sub(h.last))
			h.last = now
			h.draw()
		}
	}
}

func (h *Host) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return h.key(tcell.KeyRune, ev.Rune())
		}
		return h.key(ev.Key(), 0)
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			h.scroll(-render.CellHeight * 2)
		case ev.Buttons()&tcell.WheelDown != 0:
			h.scroll(render.CellHeight * 2)
		}
	case *tcell.EventResize:
		h.screen.Sync()
		cols, rows := h.screen.Size()
		h.resize(cols, rows)
	}
	return false, nil
}

// key applies one key press and reports whether the host should quit.
func (h *Host) key(k tcell.Key, r rune) (bool, error) {
	page := h.page.Height()
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		h.scroll(-render.CellHeight)
	case tcell.KeyDown:
		h.scroll(render.CellHeight)
	case tcell.KeyPgUp:
		h.scroll(-page)
	case tcell.KeyPgDn:
		h.scroll(page)
	case tcell.KeyHome:
		if h.page.Top() {
			h.ctrl.Scroll(h.page.Offset())
		}
	case tcell.KeyEnd:
		if h.page.Bottom() {
			h.ctrl.Scroll(h.page.Offset())
		}
	case tcell.KeyTab:
		next := config.NextVariant(h.variant)
		log.Printf("[Terminal] switching to %s", next)
		return false, h.start(next)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return true, nil
		case 'j', ' ':
			h.scroll(render.CellHeight)
		case 'k':
			h.scroll(-render.CellHeight)
		}
	}
	return false, nil
}

func (h *Host) scroll(delta float64) {
	if h.page.By(delta) {
		h.ctrl.Scroll(h.page.Offset())
	}
}

func (h *Host) resize(cols, rows int) {
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	vp := h.viewport()
	h.page.SetHeight(vp.Height)
	h.ctrl.Scroll(h.page.Offset())
	h.ctrl.Resize(vp)
}

func (h *Host) draw() {
	h.term.Draw(h.screen)
	h.overlay(h.screen)
	h.screen.Show()
}

// overlay writes the nav strip, intro caption and status line over the
// rasterized frame.
func (h *Host) overlay(s render.Surface) {
	m := h.ctrl.Mapper()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	if m.NavVisible() {
		x := 1
		for _, name := range config.Variants {
			st := style
			if name == h.variant {
				st = st.Reverse(true)
			}
			x = text(s, x, 0, " "+name+" ", st) + 1
		}
	}
	if m.IntroVisible(h.ctrl.Elapsed()) {
		caption := "scroll to unfold"
		text(s, (h.cols-len(caption))/2, h.rows/2+h.rows/4, caption, style)
	}
	status := fmt.Sprintf(" %s  %3.0f%%  ↑↓ PgUp/PgDn scroll  Tab next  q quit ",
		h.variant, h.ctrl.Progress()*100)
	text(s, 0, h.rows-1, status, style.Dim(true))
}

// text writes str at (x, y) and returns the column after it.
func text(s render.Surface, x, y int, str string, style tcell.Style) int {
	cols, rows := s.Size()
	if y < 0 || y >= rows {
		return x
	}
	for _, r := range str {
		if x >= 0 && x < cols {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}
