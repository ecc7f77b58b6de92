// Package input manages the overlay's pointer-handling mode: unlocked
// (normal interaction) or locked (click-through, pointer events pass to
// the windows beneath).
package input

import (
	"errors"
	"fmt"
	"sync"
)

// Mode is the pointer-handling mode of the overlay window.
type Mode int

const (
	// ModeUnlocked is the initial mode: the window receives pointer and
	// focus events normally.
	ModeUnlocked Mode = iota
	// ModeLocked makes the window click-through. Hotkey delivery stays
	// active because the dispatcher listens globally, not per-window.
	ModeLocked
)

func (m Mode) String() string {
	if m == ModeLocked {
		return "locked"
	}
	return "unlocked"
}

// ErrNoEscapeHatch is returned by Lock when the emergency-unlock listener
// is not installed. Without a guaranteed way back, locking the window
// would risk stranding the user behind a click-through surface.
var ErrNoEscapeHatch = errors.New("emergency unlock unavailable, refusing to lock")

// Controller owns the input mode. The window-attribute call is injected by
// the composition root; the mode only commits after the attribute call
// succeeds, so callers never observe a half-applied transition.
type Controller struct {
	mu          sync.Mutex
	mode        Mode
	escapeHatch bool
	apply       func(clickThrough bool) error
}

// New creates a controller in ModeUnlocked around the platform apply
// function.
func New(apply func(clickThrough bool) error) *Controller {
	return &Controller{apply: apply}
}

// SetEscapeHatch records whether the emergency-unlock listener is
// installed. Lock refuses to run while this is false.
func (c *Controller) SetEscapeHatch(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.escapeHatch = ok
}

// Lock switches to click-through mode. No-op when already locked.
func (c *Controller) Lock() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lock()
}

// lock is the Lock body. Callers hold the mutex.
func (c *Controller) lock() error {
	if c.mode == ModeLocked {
		return nil
	}
	if !c.escapeHatch {
		return ErrNoEscapeHatch
	}
	if err := c.apply(true); err != nil {
		return fmt.Errorf("enable click-through: %w", err)
	}
	c.mode = ModeLocked
	return nil
}

// Unlock restores normal pointer handling. No-op when already unlocked.
func (c *Controller) Unlock() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unlock()
}

// unlock is the Unlock body. Callers hold the mutex.
func (c *Controller) unlock() error {
	if c.mode == ModeUnlocked {
		return nil
	}
	if err := c.apply(false); err != nil {
		return fmt.Errorf("disable click-through: %w", err)
	}
	c.mode = ModeUnlocked
	return nil
}

// EmergencyUnlock forces the mode back to unlocked. Unlike Unlock, the
// mode is restored even when the window-attribute call fails; the caller
// gets the error for logging but the user is never left stuck in locked
// mode.
func (c *Controller) EmergencyUnlock() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeUnlocked {
		return nil
	}
	c.mode = ModeUnlocked
	if err := c.apply(false); err != nil {
		return fmt.Errorf("disable click-through: %w", err)
	}
	return nil
}

// Toggle flips between locked and unlocked and returns the resulting
// mode. Read and transition happen in one critical section, so toggles
// racing from the panel and a hotkey each flip exactly once.
func (c *Controller) Toggle() (Mode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeLocked {
		err := c.unlock()
		return c.mode, err
	}
	err := c.lock()
	return c.mode, err
}

// CurrentMode returns the active input mode.
func (c *Controller) CurrentMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}
