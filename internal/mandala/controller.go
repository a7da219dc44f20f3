package mandala

import (
	"log"
	"math/rand"
	"time"
)

// Mode selects when a Controller re-applies transforms.
type Mode int

const (
	// Continuous re-applies on every frame; used by variants that keep
	// animating without scroll input.
	Continuous Mode = iota
	// OnScroll re-applies at most once per frame, and only after a scroll.
	OnScroll
)

func (m Mode) String() string {
	if m == Continuous {
		return "continuous"
	}
	return "on-scroll"
}

// Variant is one mandala design: a layout generator plus its transform.
type Variant interface {
	Name() string
	Mode() Mode
	// Generate builds a fresh scene for vp. Any randomness comes from rng.
	Generate(vp Viewport, rng *rand.Rand) *Scene
	// Apply recomputes every primitive's Display from its base state.
	Apply(s *Scene, progress float64, elapsed time.Duration)
}

// Animator is implemented by variants with time-accumulated rotation.
type Animator interface {
	Advance(s *Scene, dt time.Duration)
}

// Scheduler is implemented by variants that run per-primitive timers.
type Scheduler interface {
	Schedule(s *Scene, t *Timers, rng *rand.Rand)
}

// Controller owns all mutable state of one running mandala: the scene, the
// scroll mapper, the clock and the timers.
type Controller struct {
	variant  Variant
	renderer Renderer
	seed     int64
	rng      *rand.Rand

	viewport Viewport
	mapper   Mapper
	scene    *Scene
	timers   Timers
	elapsed  time.Duration
	pending  bool
	applied  int
}

// NewController binds a variant to a renderer. seed makes layout jitter and
// timer intervals reproducible.
func NewController(v Variant, r Renderer, seed int64) *Controller {
	return &Controller{
		variant:  v,
		renderer: r,
		seed:     seed,
	}
}

// Init generates the scene for vp, registers it with the renderer and runs
// one transform pass.
func (c *Controller) Init(vp Viewport) {
	c.viewport = vp
	c.rng = rand.New(rand.NewSource(c.seed))
	c.scene = c.variant.Generate(vp, c.rng)
	for i := range c.scene.Primitives {
		p := &c.scene.Primitives[i]
		c.renderer.CreatePrimitive(p.ID, p.Shape)
	}
	if s, ok := c.variant.(Scheduler); ok {
		s.Schedule(c.scene, &c.timers, c.rng)
	}
	c.mapper.Update(c.mapper.Offset(), vp.Height)
	c.apply()
	log.Printf("[Controller] %s initialized: %d primitives, %d rings, %.0fx%.0f",
		c.variant.Name(), len(c.scene.Primitives), len(c.scene.Rings), vp.Width, vp.Height)
}

// Resize discards the scene and regenerates it for vp. Timers bound to the
// old primitives are cleared first.
func (c *Controller) Resize(vp Viewport) {
	c.timers.Clear()
	c.renderer.RemoveAll()
	c.scene = nil
	c.Init(vp)
}

// Scroll records a scroll notification. On-scroll variants coalesce: only
// the latest offset is applied on the next Frame.
func (c *Controller) Scroll(offsetY float64) {
	c.mapper.Update(offsetY, c.viewport.Height)
	c.pending = true
}

// Frame advances the clock by dt and re-applies transforms when the mode
// calls for it. It reports whether a transform pass ran.
func (c *Controller) Frame(dt time.Duration) bool {
	if c.scene == nil {
		return false
	}
	c.elapsed += dt
	c.timers.Advance(dt)
	if a, ok := c.variant.(Animator); ok {
		a.Advance(c.scene, dt)
	}
	if c.variant.Mode() == Continuous || c.pending {
		c.apply()
		return true
	}
	return false
}

// Teardown clears timers and removes every primitive from the renderer.
func (c *Controller) Teardown() {
	c.timers.Clear()
	c.renderer.RemoveAll()
	if c.scene != nil {
		log.Printf("[Controller] %s torn down", c.variant.Name())
	}
	c.scene = nil
	c.pending = false
}

func (c *Controller) apply() {
	c.pending = false
	c.applied++
	c.variant.Apply(c.scene, c.mapper.Progress(), c.elapsed)
	for i := range c.scene.Primitives {
		p := &c.scene.Primitives[i]
		c.renderer.UpdatePrimitive(p.ID, p.Display)
	}
}

// Variant returns the running variant.
func (c *Controller) Variant() Variant { return c.variant }

// Scene returns the live scene, nil after Teardown.
func (c *Controller) Scene() *Scene { return c.scene }

// Mapper exposes the scroll state for overlays.
func (c *Controller) Mapper() *Mapper { return &c.mapper }

// Progress returns the current scroll progress.
func (c *Controller) Progress() float64 { return c.mapper.Progress() }

// Elapsed returns the time accumulated through Frame.
func (c *Controller) Elapsed() time.Duration { return c.elapsed }

// Timers returns the number of pending timers.
func (c *Controller) Timers() int { return c.timers.Len() }

// Passes returns how many transform passes have run.
func (c *Controller) Passes() int { return c.applied }
