package refract

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Link plane layout in world units.
const (
	LinkSize   = 0.2
	LinkMargin = 0.1
	LinkDepth  = 0.01
)

// LinkPosition places the link plane's center in the bottom-right corner of the extent.
func LinkPosition(ext Extent) [3]float32 {
	return [3]float32{
		ext.Width/2 - LinkSize/2 - LinkMargin,
		-ext.Height/2 + LinkSize/2 + LinkMargin,
		LinkDepth,
	}
}

// linkPlane is an invisible, camera-facing square the pointer can hover.
type linkPlane struct {
	url    string
	center mgl32.Vec3
	half   float32
}

func newLinkPlane(url string, ext Extent) *linkPlane {
	l := &linkPlane{url: url, half: LinkSize / 2}
	l.place(ext)
	return l
}

func (l *linkPlane) place(ext Extent) {
	l.center = mgl32.Vec3(LinkPosition(ext))
}

// hit reports whether the ray crosses the plane's square.
func (l *linkPlane) hit(origin, dir mgl32.Vec3) bool {
	if mgl32.Abs(dir.Z()) < 1e-6 {
		return false
	}
	t := (l.center.Z() - origin.Z()) / dir.Z()
	if t < 0 {
		return false
	}
	p := origin.Add(dir.Mul(t))
	return mgl32.Abs(p.X()-l.center.X()) <= l.half && mgl32.Abs(p.Y()-l.center.Y()) <= l.half
}

// PointerRay casts a world-space ray through a normalized pointer position.
//
// Parameters:
//   - ndc: pointer position, both axes in [-1, 1]
//   - viewProj: the camera's column-major view-projection matrix
//
// Returns:
//   - mgl32.Vec3: ray origin on the near plane
//   - mgl32.Vec3: unit ray direction
//   - bool: false if viewProj cannot be inverted
func PointerRay(ndc [2]float32, viewProj [16]float32) (mgl32.Vec3, mgl32.Vec3, bool) {
	vp := mgl32.Mat4(viewProj)
	if mgl32.Abs(vp.Det()) < 1e-12 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	inv := vp.Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 0, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1})
	if near.W() == 0 || far.W() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	origin := near.Vec3().Mul(1 / near.W())
	target := far.Vec3().Mul(1 / far.W())
	dir := target.Sub(origin)
	if dir.Len() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return origin, dir.Normalize(), true
}

// OpenURL hands url to the platform's default handler.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}
