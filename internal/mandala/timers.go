package mandala

import "time"

type timer struct {
	id    int
	at    time.Duration
	every time.Duration
	fn    func()
}

// Timers is a frame-driven timer wheel. Nothing fires between Advance calls,
// so callbacks run on the same loop as the transforms.
type Timers struct {
	now     time.Duration
	entries []*timer
	nextID  int
}

// After schedules fn once, d from now.
func (t *Timers) After(d time.Duration, fn func()) int {
	return t.add(d, 0, fn)
}

// Every schedules fn every d, first firing d from now.
func (t *Timers) Every(d time.Duration, fn func()) int {
	if d <= 0 {
		d = time.Millisecond
	}
	return t.add(d, d, fn)
}

func (t *Timers) add(d, every time.Duration, fn func()) int {
	t.nextID++
	t.entries = append(t.entries, &timer{id: t.nextID, at: t.now + d, every: every, fn: fn})
	return t.nextID
}

// Cancel removes the timer with id.
func (t *Timers) Cancel(id int) {
	for i, e := range t.entries {
		if e.id == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Clear drops every pending timer.
func (t *Timers) Clear() {
	t.entries = nil
}

// Len returns the number of pending timers.
func (t *Timers) Len() int { return len(t.entries) }

// Advance moves the clock forward by dt and fires due timers in deadline
// order. A repeating timer fires once per elapsed interval.
func (t *Timers) Advance(dt time.Duration) {
	t.now += dt
	for {
		next := -1
		for i, e := range t.entries {
			if e.at <= t.now && (next < 0 || e.at < t.entries[next].at) {
				next = i
			}
		}
		if next < 0 {
			return
		}
		e := t.entries[next]
		if e.every > 0 {
			e.at += e.every
		} else {
			t.entries = append(t.entries[:next], t.entries[next+1:]...)
		}
		e.fn()
	}
}
