//go:build !cgo

package window

import (
	"errors"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/platform/session"
)

// ErrUnavailable is returned when the binary was built without cgo.
var ErrUnavailable = errors.New("window: frontend requires cgo")

// Run always fails without cgo.
func Run(session.Options, core.RuntimeConfig, string) error {
	return ErrUnavailable
}
