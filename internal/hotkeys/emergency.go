package hotkeys

import (
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// EmergencyWatcher is the escape hatch behind the lock feature. It watches
// a single chord through a raw keyboard hook, a separate delivery path
// from the registered-hotkey dispatcher: if the dispatcher misbehaves or
// its registrations were rejected, the watcher still fires. The input
// controller refuses to enter locked mode unless this watcher is running.
//
// The underlying hook is process-global, so at most one watcher may run
// per process.
type EmergencyWatcher struct {
	chord Chord
	fire  func()

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewEmergencyWatcher creates a watcher for the given chord. fire runs on
// the hook's callback goroutine and must not block.
func NewEmergencyWatcher(chord Chord, fire func()) *EmergencyWatcher {
	return &EmergencyWatcher{chord: chord, fire: fire}
}

// Start installs the keyboard hook. Returns ErrRegistrationFailed when the
// hook could not be installed (typically missing input-monitoring
// permission).
func (w *EmergencyWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	hook.Register(hook.KeyDown, w.chord.Tokens(), func(e hook.Event) {
		w.fire()
	})

	events := hook.Start()
	if events == nil {
		return ErrRegistrationFailed
	}

	w.done = make(chan struct{})
	go func() {
		<-hook.Process(events)
		close(w.done)
	}()

	w.running = true
	return nil
}

// Stop tears down the keyboard hook. Must run before process exit so the
// OS-level hook does not dangle.
func (w *EmergencyWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	hook.End()

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
	}
	w.running = false
}

// Running reports whether the escape hatch is live.
func (w *EmergencyWatcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
