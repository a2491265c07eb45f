package animator

import "github.com/chewxy/math32"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float32) float32

// Easing curves, named after their GSAP counterparts.
var (
	Linear Ease = func(t float32) float32 { return t }

	Power2In Ease = func(t float32) float32 { return math32.Pow(t, 2) }

	Power2Out Ease = func(t float32) float32 { return 1 - math32.Pow(1-t, 2) }

	Power3In Ease = func(t float32) float32 { return math32.Pow(t, 3) }

	// Power3Out is 1-(1-t)^3; fast start, slow settle.
	Power3Out Ease = func(t float32) float32 { return 1 - math32.Pow(1-t, 3) }
)
