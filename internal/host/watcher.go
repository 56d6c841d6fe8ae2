package host

import (
	"os"
	"time"
)

type stamp struct {
	mod  time.Time
	size int64
}

// Watcher polls a file's modification time and size. It is driven by the
// host once per frame and never blocks.
type Watcher struct {
	path   string
	settle int

	last    stamp
	pending stamp
	waiting bool
	stable  int

	stat func(string) (os.FileInfo, error)
}

// NewWatcher creates a watcher for path. With settle > 0 a change must be
// observed unchanged on that many further polls before Poll reports it,
// which skips files that are still being written.
func NewWatcher(path string, settle int) *Watcher {
	w := &Watcher{path: path, settle: settle, stat: os.Stat}
	w.Reset()
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reset takes the current state of the file as the new baseline.
func (w *Watcher) Reset() {
	w.last, _ = w.current()
	w.waiting = false
	w.stable = 0
}

func (w *Watcher) current() (stamp, bool) {
	fi, err := w.stat(w.path)
	if err != nil {
		return stamp{}, false
	}
	return stamp{mod: fi.ModTime(), size: fi.Size()}, true
}

// Poll reports whether the file changed since the baseline. A reported change
// becomes the new baseline.
func (w *Watcher) Poll() bool {
	cur, ok := w.current()
	if !ok {
		// missing while being replaced; keep waiting
		w.waiting = false
		return false
	}
	if cur == w.last {
		w.waiting = false
		return false
	}

	if w.settle > 0 {
		if !w.waiting || cur != w.pending {
			w.pending = cur
			w.waiting = true
			w.stable = 0
			return false
		}
		w.stable++
		if w.stable < w.settle {
			return false
		}
	}

	w.last = cur
	w.waiting = false
	w.stable = 0
	return true
}
