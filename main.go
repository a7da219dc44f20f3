package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/game"
	"github.com/iburimskiy/mandala-visualization/internal/mandala"
	"github.com/iburimskiy/mandala-visualization/internal/render"
	"github.com/iburimskiy/mandala-visualization/internal/soundtrack"
	"github.com/iburimskiy/mandala-visualization/internal/terminal"
)

func main() {
	variant := flag.String("variant", "", "mandala variant: diamonds, particles, shapes, hexes or grid")
	configPath := flag.String("config", "", "YAML file overriding the variant parameters")
	term := flag.Bool("term", false, "render in the terminal instead of a window")
	svgPath := flag.String("svg", "", "write one frame as SVG to this file and exit")
	progress := flag.Float64("progress", 0, "scroll progress of the SVG frame, 0..1")
	seed := flag.Int64("seed", 1, "seed for layout jitter and timer intervals")
	size := flag.String("size", "1024x768", "SVG frame size as WxH")
	logPath := flag.String("log", "", "log file for terminal mode (default: discard)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	name := cfg.Variant
	if *variant != "" {
		name = *variant
	}
	if !config.KnownVariant(name) {
		log.Fatalf("%v: %q", config.ErrUnknownVariant, name)
	}

	switch {
	case *svgPath != "":
		vp, err := parseSize(*size)
		if err != nil {
			log.Fatalf("Invalid -size: %v", err)
		}
		if err := exportSVG(cfg, name, *seed, vp, *progress, *svgPath); err != nil {
			log.Fatalf("SVG export failed: %v", err)
		}
		log.Printf("Wrote %s (%s at %.0f%%)", *svgPath, name, *progress*100)
	case *term:
		if err := runTerminal(cfg, name, *seed, *logPath); err != nil {
			log.Fatalf("Terminal host failed: %v", err)
		}
	default:
		if err := runWindow(cfg, name, *seed); err != nil {
			log.Fatalf("Window host failed: %v", err)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

func parseSize(s string) (mandala.Viewport, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return mandala.Viewport{}, fmt.Errorf("%q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return mandala.Viewport{}, fmt.Errorf("%q: dimensions must be positive", s)
	}
	return mandala.Viewport{Width: float64(w), Height: float64(h)}, nil
}

func exportSVG(cfg *config.Config, name string, seed int64, vp mandala.Viewport, progress float64, path string) error {
	v, err := mandala.New(name, cfg)
	if err != nil {
		return err
	}
	r := render.NewSVG(name)
	ctrl := mandala.NewController(v, r, seed)
	ctrl.Init(vp)
	ctrl.Scroll(progress * vp.Height)
	ctrl.Frame(0)
	defer ctrl.Teardown()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f, vp); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runTerminal(cfg *config.Config, name string, seed int64, logPath string) error {
	// The screen owns stdout; keep log lines off it.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	host, err := terminal.New(screen, cfg, name, seed)
	if err != nil {
		return err
	}
	return host.Run(ctx)
}

func runWindow(cfg *config.Config, name string, seed int64) error {
	player := soundtrack.NewPlayer()
	defer player.Close()

	g, err := game.New(cfg, name, seed, player)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(game.Title(name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
