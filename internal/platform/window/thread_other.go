//go:build cgo && !linux

package window

// onMainThread cannot be checked portably; GLFW reports misuse itself.
func onMainThread() bool {
	return true
}
