package common

// Key codes delivered to window key callbacks. They match GLFW key codes, which use ASCII
// values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF     = 70  // F key (ASCII)
	KeyH     = 72  // H key (ASCII)
	KeyEnter = 257 // Enter key (GLFW)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Mouse buttons delivered to window mouse callbacks.
const (
	MouseButtonLeft  = 0
	MouseButtonRight = 1
)
