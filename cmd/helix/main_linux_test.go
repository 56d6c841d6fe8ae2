package main

import (
	"os"
	"runtime"
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

// TestMain checks that init pinned the main goroutine to the initial thread
// even after other goroutines have been scheduled.
func TestMain(m *testing.M) {
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.Gosched()
		}()
	}
	runtime.Gosched()
	wg.Wait()

	if unix.Gettid() != unix.Getpid() {
		os.Stderr.WriteString("main goroutine left the main thread\n")
		os.Exit(1)
	}
	os.Exit(m.Run())
}
