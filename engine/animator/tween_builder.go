package animator

// TweenBuilderOption is a functional option for configuring a Tween via NewTween.
type TweenBuilderOption func(*tween)

// WithFromTo sets the start and end values.
func WithFromTo(from, to float32) TweenBuilderOption {
	return func(t *tween) {
		t.from = from
		t.to = to
	}
}

// WithDuration sets the length of one iteration in seconds.
func WithDuration(seconds float32) TweenBuilderOption {
	return func(t *tween) {
		t.duration = float64(seconds)
	}
}

// WithDelay sets the wait before the first iteration starts.
func WithDelay(seconds float32) TweenBuilderOption {
	return func(t *tween) {
		t.delay = float64(seconds)
	}
}

// WithRepeat sets how many times the tween repeats after the first iteration.
// Use RepeatForever for an endless loop.
func WithRepeat(n int) TweenBuilderOption {
	return func(t *tween) {
		if n < RepeatForever {
			n = 0
		}
		t.repeat = n
	}
}

// WithRepeatDelay sets the hold between iterations in seconds.
func WithRepeatDelay(seconds float32) TweenBuilderOption {
	return func(t *tween) {
		t.repeatDelay = float64(seconds)
	}
}

// WithEase sets the easing curve. Nil keeps the current one.
func WithEase(ease Ease) TweenBuilderOption {
	return func(t *tween) {
		if ease != nil {
			t.ease = ease
		}
	}
}

// WithOnUpdate sets a callback invoked with the eased value after every Advance that
// reaches the active part of the timeline.
func WithOnUpdate(fn func(value float32)) TweenBuilderOption {
	return func(t *tween) {
		t.onUpdate = fn
	}
}

// WithOnRepeat sets a callback invoked as each new iteration begins, with the running repeat count.
func WithOnRepeat(fn func(count int)) TweenBuilderOption {
	return func(t *tween) {
		t.onRepeat = fn
	}
}

// WithOnComplete sets a callback invoked once when a finite tween finishes.
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *tween) {
		t.onComplete = fn
	}
}
