package mandala

import "time"

// Reveal is a looping show/hide sequence over Count elements: element i turns
// on at Start + i*Step, all hold for Hold, then they turn off in reverse order
// Step apart, and the cycle restarts Restart after the last one is off. Every
// change eases linearly over Fade.
type Reveal struct {
	Count   int
	Start   time.Duration
	Step    time.Duration
	Hold    time.Duration
	Restart time.Duration
	Fade    time.Duration
}

// Period is the length of one show/hold/hide/restart cycle.
func (r Reveal) Period() time.Duration {
	span := time.Duration(r.Count-1) * r.Step
	return span + r.Hold + span + r.Restart
}

func (r Reveal) onAt(i int) time.Duration {
	return time.Duration(i) * r.Step
}

func (r Reveal) offAt(i int) time.Duration {
	span := time.Duration(r.Count-1) * r.Step
	return span + r.Hold + time.Duration(r.Count-1-i)*r.Step
}

// Opacity of element i at elapsed. It depends on nothing but its arguments.
func (r Reveal) Opacity(elapsed time.Duration, i int) float64 {
	if r.Count <= 0 || i < 0 || i >= r.Count || elapsed < r.Start {
		return 0
	}
	period := r.Period()
	t := elapsed - r.Start
	cycle := t / period
	u := t % period
	on, off := r.onAt(i), r.offAt(i)

	switch {
	case u >= on && u < off:
		return r.ramp(u - on)
	case u >= off:
		return 1 - r.ramp(u-off)
	case cycle > 0:
		// Still fading out from the previous cycle.
		return 1 - r.ramp(u+period-off)
	}
	return 0
}

func (r Reveal) ramp(d time.Duration) float64 {
	if r.Fade <= 0 {
		return 1
	}
	return clamp01(float64(d) / float64(r.Fade))
}
