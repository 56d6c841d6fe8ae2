// Package headless drives a session without a display, at a fixed frame
// duration. It backs batch runs and the reload soak test.
package headless

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/platform/session"
)

// ErrReloadDrift is returned when a forced reload changes the state record.
var ErrReloadDrift = errors.New("headless: reload changed the state record")

// Options control a headless run.
type Options struct {
	// Frames is the number of frames to run; 0 runs until ctx is done.
	Frames      int
	FrameMillis uint64
	// ReloadEvery forces a reload after every n-th frame; 0 disables it.
	ReloadEvery int
	// Keys returns the input of a frame; nil means no input.
	Keys func(frame int) core.KeyState
	// OnFrame is called after every frame.
	OnFrame func(frame int)
}

// Stats summarize a run.
type Stats struct {
	Frames  int
	Reloads int
}

// Run drives a started session until opts.Frames frames have run, ctx is
// cancelled or the host fails.
func Run(ctx context.Context, s *session.Session, opts Options) (Stats, error) {
	var stats Stats
	dt := opts.FrameMillis
	if dt == 0 {
		dt = core.DefaultConfig().FrameMillis()
	}

	for opts.Frames == 0 || stats.Frames < opts.Frames {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		var keys core.KeyState
		if opts.Keys != nil {
			keys = opts.Keys(stats.Frames)
		}
		if err := s.Host.Frame(keys, dt); err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.Frames, err)
		}
		stats.Frames++

		if opts.ReloadEvery > 0 && stats.Frames%opts.ReloadEvery == 0 {
			if err := reload(s); err != nil {
				return stats, fmt.Errorf("frame %d: %w", stats.Frames, err)
			}
			stats.Reloads++
		}
		if opts.OnFrame != nil {
			opts.OnFrame(stats.Frames)
		}
	}
	return stats, nil
}

// reload forces a reload and checks that the record survived it unchanged.
func reload(s *session.Session) error {
	before, err := s.Block().Record()
	if err != nil {
		return err
	}
	if err := s.Host.Reload(); err != nil {
		return err
	}
	after, err := s.Block().Record()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return ErrReloadDrift
	}
	return nil
}
