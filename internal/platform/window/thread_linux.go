//go:build cgo && linux

package window

import "golang.org/x/sys/unix"

// onMainThread reports whether the caller runs on the process's initial
// thread, whose thread id equals the process id.
func onMainThread() bool {
	return unix.Gettid() == unix.Getpid()
}
