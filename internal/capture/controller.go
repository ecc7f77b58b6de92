// Package capture toggles the OS attribute that hides the overlay from
// screen-recording and screen-share output while it stays visible on the
// local display.
package capture

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable indicates the OS or compositor cannot honor capture
// exclusion. The overlay keeps operating, visible in captures.
var ErrUnavailable = errors.New("capture exclusion not supported on this platform")

// Controller owns the capture-exclusion boolean. The actual OS call is
// injected so the controller stays platform-free.
type Controller struct {
	mu       sync.Mutex
	excluded bool
	apply    func(excluded bool) error
}

// New creates a controller around the platform apply function.
func New(apply func(excluded bool) error) *Controller {
	return &Controller{apply: apply}
}

// SetExcluded marks the window surface as excluded from (or visible to)
// capture. Setting the current value again is a no-op with no OS call, so
// repeated toggles never flicker. On failure the state is unchanged.
func (c *Controller) SetExcluded(excluded bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setExcluded(excluded)
}

// setExcluded is the SetExcluded body. Callers hold the mutex.
func (c *Controller) setExcluded(excluded bool) error {
	if excluded == c.excluded {
		return nil
	}
	if err := c.apply(excluded); err != nil {
		return fmt.Errorf("set capture affinity: %w", err)
	}
	c.excluded = excluded
	return nil
}

// Toggle flips the exclusion state and returns the new value. Read and
// flip happen in one critical section, so racing toggles from the panel
// and a hotkey each flip exactly once. On failure the previous value is
// returned alongside the error.
func (c *Controller) Toggle() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.setExcluded(!c.excluded)
	return c.excluded, err
}

// Excluded reports whether the window is currently hidden from capture.
func (c *Controller) Excluded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.excluded
}
