package common

// Key codes delivered by the window's key callbacks.
// Values match GLFW key codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc   = 256
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
	KeyF1    = 290
	KeyF2    = 291
)
