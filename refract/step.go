package refract

import (
	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/chewxy/math32"
)

// CameraZ is the camera distance the scene is laid out for.
const CameraZ = 3

// Extent is the size of the view frustum's cross-section at z=0, in world units.
type Extent struct {
	Width, Height float32
}

// ComputeExtent returns the world-space rectangle visible at z=0 from a camera at distance
// camZ.
//
// Parameters:
//   - camZ: camera distance from the z=0 plane
//   - fovDeg: vertical field of view in degrees
//   - aspect: viewport width / height
//
// Returns:
//   - Extent: width and height of the visible rectangle
func ComputeExtent(camZ, fovDeg, aspect float32) Extent {
	h := camZ * math32.Tan(common.DegToRad(fovDeg)/2) * 2
	return Extent{Width: h * aspect, Height: h}
}

// Crossfade names the two images being blended and how far the blend has gone.
type Crossfade struct {
	Current, Next int
	Progress      float32
}

// NewCrossfade starts a crossfade over n images at image 0 with no blend applied.
func NewCrossfade(n int) Crossfade {
	return Crossfade{Current: 0, Next: common.NextIndex(0, n)}
}

// Advance moves to the next pair: the old next image becomes current.
func (c *Crossfade) Advance(n int) {
	c.Current = common.NextIndex(c.Current, n)
	c.Next = common.NextIndex(c.Current, n)
}

// FrameState is everything the frame step carries from one frame to the next.
type FrameState struct {
	// Elapsed is the time since the scene became ready, in seconds.
	Elapsed float32

	// Time feeds the sphere's wobble.
	Time float32

	// Sphere is the sphere's xy position in world units.
	Sphere [2]float32

	Crossfade Crossfade

	// Repeats counts the crossfade repeats already folded into Crossfade.
	Repeats int
}

// FrameInput is what a frame step reads from the outside world.
type FrameInput struct {
	Dt float32

	// Pointer is the normalized pointer position, both axes in [-1, 1].
	Pointer [2]float32

	Extent Extent

	// Follow is the fraction of the remaining distance the sphere covers per frame.
	Follow float32

	// Repeats is the crossfade timeline's completed repeat count.
	Repeats int

	// Progress is the eased crossfade blend of the current iteration.
	Progress float32

	// Images is the number of slideshow images.
	Images int
}

// FrameOutput reports what changed during a frame step.
type FrameOutput struct {
	// Target is where the sphere is heading.
	Target [2]float32

	// Swapped is true when the crossfade moved to a new image pair.
	Swapped bool
}

// Step advances the per-frame state. It never touches the GPU.
//
// Parameters:
//   - state: the state carried between frames, updated in place
//   - in: this frame's inputs
//
// Returns:
//   - FrameOutput: the sphere target and whether the image pair changed
func Step(state *FrameState, in FrameInput) FrameOutput {
	var out FrameOutput

	state.Elapsed += in.Dt

	out.Target = [2]float32{
		in.Pointer[0] * in.Extent.Width / 2,
		in.Pointer[1] * in.Extent.Height / 2,
	}
	follow := common.Clamp(in.Follow, 0, 1)
	for i := range state.Sphere {
		state.Sphere[i] = common.Lerp(state.Sphere[i], out.Target[i], follow)
	}

	state.Time += in.Dt

	if in.Images > 0 {
		for state.Repeats < in.Repeats {
			state.Crossfade.Advance(in.Images)
			state.Repeats++
			out.Swapped = true
		}
	}
	state.Crossfade.Progress = in.Progress
	return out
}
