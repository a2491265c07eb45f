package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-refract/engine/animator"
	"github.com/Carmen-Shannon/oxy-refract/engine/window"
	"github.com/chewxy/math32"
)

// loadingBarWidth is the number of cells the title bar shows at full opacity.
const loadingBarWidth = 10

// loadingFade shows a loading bar in the window title and fades it out once the scene
// reports ready.
type loadingFade struct {
	win   window.Window
	title string
	tween animator.Tween
}

func newLoadingFade(win window.Window, title string) *loadingFade {
	f := &loadingFade{win: win, title: title}
	f.show(1)
	return f
}

// SetReady starts the fade on the first true value.
func (f *loadingFade) SetReady(ready bool) {
	if !ready || f.tween != nil {
		return
	}
	f.tween = animator.NewTween(
		animator.WithFromTo(1, 0),
		animator.WithDuration(1),
		animator.WithEase(animator.Power2In),
		animator.WithOnUpdate(f.show),
		animator.WithOnComplete(func() { f.win.SetTitle(f.title) }),
	)
}

// Advance moves the fade forward. It runs every frame.
func (f *loadingFade) Advance(dt float32) {
	if f.tween == nil || f.tween.Done() {
		return
	}
	f.tween.Advance(dt)
}

func (f *loadingFade) show(opacity float32) {
	n := int(math32.Ceil(opacity * loadingBarWidth))
	if n <= 0 {
		f.win.SetTitle(f.title)
		return
	}
	bar := strings.Repeat("#", n) + strings.Repeat(" ", loadingBarWidth-n)
	f.win.SetTitle(fmt.Sprintf("%s [%s]", f.title, bar))
}
