// Package animator drives time-based property tweens.
//
// A Tween is advanced explicitly by the frame loop; it never reads a clock or spawns goroutines.
// The timeline follows GSAP: an initial delay, then duration-long iterations separated by
// repeatDelay, with the value held at the end of an iteration while waiting for the next one.
package animator

import "math"

// RepeatForever makes a tween repeat until killed.
const RepeatForever = -1

// Tween interpolates a value from From to To over time.
type Tween interface {
	// Advance moves the timeline forward by dt seconds, firing callbacks for every
	// boundary crossed. Negative dt is ignored. No-op once complete or killed.
	Advance(dt float32)

	// Value returns From + (To-From)·ease(progress).
	Value() float32

	// Progress returns the linear progress of the current iteration in [0, 1].
	Progress() float32

	// Repeats returns the number of completed iteration boundaries.
	Repeats() int

	// Done reports whether the tween has completed or been killed.
	Done() bool

	// Kill stops the tween without firing OnComplete.
	Kill()
}

type tween struct {
	from, to    float32
	duration    float64
	delay       float64
	repeat      int
	repeatDelay float64
	ease        Ease

	onUpdate   func(value float32)
	onRepeat   func(count int)
	onComplete func()

	elapsed  float64
	repeats  int
	progress float32
	done     bool
}

var _ Tween = &tween{}

// NewTween creates a tween from 0 to 1 over one second with linear easing, then applies options.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Tween: the configured tween, at time zero
func NewTween(options ...TweenBuilderOption) Tween {
	t := &tween{
		to:       1,
		duration: 1,
		ease:     Linear,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.duration <= 0 {
		t.duration = math.SmallestNonzeroFloat32
	}
	return t
}

func (t *tween) Advance(dt float32) {
	if t.done || dt <= 0 {
		return
	}
	t.elapsed += float64(dt)

	local := t.elapsed - t.delay
	if local < 0 {
		return
	}

	cycle := t.duration + t.repeatDelay
	iteration := int(math.Floor(local / cycle))
	if t.repeat != RepeatForever && iteration > t.repeat {
		iteration = t.repeat
	}

	for t.repeats < iteration {
		t.repeats++
		if t.onRepeat != nil {
			t.onRepeat(t.repeats)
		}
	}

	within := local - float64(iteration)*cycle
	if within >= t.duration {
		t.progress = 1
	} else {
		t.progress = float32(within / t.duration)
	}

	if t.onUpdate != nil {
		t.onUpdate(t.Value())
	}

	if t.repeat != RepeatForever && iteration == t.repeat && within >= t.duration {
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

func (t *tween) Value() float32 {
	return t.from + (t.to-t.from)*t.ease(t.progress)
}

func (t *tween) Progress() float32 {
	return t.progress
}

func (t *tween) Repeats() int {
	return t.repeats
}

func (t *tween) Done() bool {
	return t.done
}

func (t *tween) Kill() {
	t.done = true
}
