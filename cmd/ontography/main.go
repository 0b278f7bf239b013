// Command ontography opens the interactive 3D ontography viewer and inspects its dataset.
package main

import (
	"os"
	"runtime"
)

// GLFW requires window calls on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
