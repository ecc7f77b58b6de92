package hotkeys

import (
	"errors"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// ErrRegistrationFailed means a global listener could not be installed
// (missing permission, unsupported display server, chord taken by another
// application).
var ErrRegistrationFailed = errors.New("global hotkey registration failed")

// Dispatcher installs one OS-registered listener per binding and funnels
// every keydown into a single command channel. One goroutine drains that
// channel and invokes the handler, so hotkey-triggered mutations are
// serialized no matter how many chords fire at once.
type Dispatcher struct {
	table   *Table
	handler func(Action)

	mu      sync.Mutex
	started bool
	keys    []*hotkey.Hotkey
	cmds    chan Action
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher over a validated table. The handler
// runs on the dispatch goroutine and must not block.
func NewDispatcher(table *Table, handler func(Action)) *Dispatcher {
	return &Dispatcher{table: table, handler: handler}
}

// Start registers every chord in the table. Bindings that fail to register
// are logged and skipped; the overlay still works through the remaining
// chords and the emergency watcher. ErrRegistrationFailed is returned only
// when not a single chord could be installed.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}

	d.cmds = make(chan Action, 16)
	d.stop = make(chan struct{})

	registered := 0
	for _, b := range d.table.Bindings() {
		hk := hotkey.New(b.Chord.Modifiers(), b.Chord.Key())
		if err := hk.Register(); err != nil {
			slog.Warn("hotkey registration failed",
				"chord", b.Chord.String(), "action", b.Action.String(), "error", err)
			continue
		}
		d.keys = append(d.keys, hk)
		registered++

		d.wg.Add(1)
		go d.listen(hk, b.Action)
	}

	d.wg.Add(1)
	go d.dispatch()

	d.started = true
	if registered == 0 {
		return ErrRegistrationFailed
	}
	slog.Info("global hotkeys registered", "count", registered, "total", len(d.table.Bindings()))
	return nil
}

// listen forwards keydown events for one chord onto the command channel.
func (d *Dispatcher) listen(hk *hotkey.Hotkey, action Action) {
	defer d.wg.Done()
	for {
		select {
		case <-hk.Keydown():
			select {
			case d.cmds <- action:
			case <-d.stop:
				return
			}
		case <-d.stop:
			return
		}
	}
}

// dispatch is the single serialized mutation point for hotkey commands.
func (d *Dispatcher) dispatch() {
	defer d.wg.Done()
	for {
		select {
		case action := <-d.cmds:
			d.handler(action)
		case <-d.stop:
			return
		}
	}
}

// Stop unregisters every chord and waits for the goroutines to drain.
// Must be called on shutdown so no OS-level hooks dangle past the process.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return
	}
	close(d.stop)
	d.wg.Wait()

	for _, hk := range d.keys {
		if err := hk.Unregister(); err != nil {
			slog.Warn("hotkey unregister failed", "error", err)
		}
	}
	d.keys = nil
	d.started = false
}
