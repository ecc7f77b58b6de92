package scroll

import (
	"sync"
	"time"
)

// DefaultTickInterval is the autoscroll cadence. 33ms keeps motion smooth
// without saturating the webview repaint path.
const DefaultTickInterval = 33 * time.Millisecond

// Options configures a new Engine.
type Options struct {
	Speed        float64 // content units advanced per tick
	MinSpeed     float64
	MaxSpeed     float64
	TickInterval time.Duration
}

// DefaultOptions returns the engine defaults (speed range 1..10, 33ms tick).
func DefaultOptions() Options {
	return Options{
		Speed:        1,
		MinSpeed:     1,
		MaxSpeed:     10,
		TickInterval: DefaultTickInterval,
	}
}

// Snapshot is a consistent read of the scroll state.
type Snapshot struct {
	Position      float64 `json:"position"`
	Speed         float64 `json:"speed"`
	Running       bool    `json:"running"`
	ContentLength float64 `json:"content_length"`
}

// Engine advances the scroll position on a fixed tick cadence while
// running. The ticker goroutine and hotkey-triggered manual adjustments
// share one mutex, so position and speed never see torn updates.
type Engine struct {
	mu            sync.Mutex
	position      float64
	speed         float64
	minSpeed      float64
	maxSpeed      float64
	running       bool
	contentLength float64

	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates an engine and starts its tick loop. The loop is idle until
// Start or Toggle flips the engine to running. Call Close on shutdown.
func New(opts Options) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.MaxSpeed < opts.MinSpeed {
		opts.MaxSpeed = opts.MinSpeed
	}
	e := &Engine{
		speed:    clamp(opts.Speed, opts.MinSpeed, opts.MaxSpeed),
		minSpeed: opts.MinSpeed,
		maxSpeed: opts.MaxSpeed,
		interval: opts.TickInterval,
		stopChan: make(chan struct{}),
	}
	go e.loop()
	return e
}

// loop drives ticks for the lifetime of the engine.
func (e *Engine) loop() {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick advances the position by one speed increment. Reaching the end of
// the content stops the engine rather than wrapping around.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.position += e.speed
	if e.position >= e.contentLength {
		e.position = e.contentLength
		e.running = false
	}
}

// Toggle flips between running and stopped and reports the new state.
// Toggling to running at the end of the content restarts from the top.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running && e.position >= e.contentLength {
		e.position = 0
	}
	e.running = !e.running
	return e.running
}

// Start begins autoscrolling. No-op when already running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = true
}

// Stop halts autoscrolling. No-op when already stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
}

// Running reports whether the engine is autoscrolling.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// AdjustSpeed changes the speed by delta, clamped to the configured range,
// and returns the new speed.
func (e *Engine) AdjustSpeed(delta float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speed = clamp(e.speed+delta, e.minSpeed, e.maxSpeed)
	return e.speed
}

// SetSpeed sets the speed directly (settings panel slider), clamped to the
// configured range, and returns the applied value.
func (e *Engine) SetSpeed(speed float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speed = clamp(speed, e.minSpeed, e.maxSpeed)
	return e.speed
}

// Step performs a one-shot manual position adjustment. It is allowed in
// both stopped and running states and never touches the speed. A step that
// reaches the end of the content while running stops the engine, the same
// as a tick would.
func (e *Engine) Step(delta float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.position = clamp(e.position+delta, 0, e.contentLength)
	if e.running && e.position >= e.contentLength {
		e.running = false
	}
	return e.position
}

// SetPosition jumps to an absolute position, clamped to the content range.
func (e *Engine) SetPosition(pos float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = clamp(pos, 0, e.contentLength)
	return e.position
}

// SetContentLength updates the scrollable extent. The frontend reports
// this after layout, since only it knows the rendered height. Position is
// re-clamped so a shrinking script cannot leave the view past the end.
func (e *Engine) SetContentLength(length float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if length < 0 {
		length = 0
	}
	e.contentLength = length
	e.position = clamp(e.position, 0, length)
}

// Snapshot returns a consistent copy of the scroll state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Position:      e.position,
		Speed:         e.speed,
		Running:       e.running,
		ContentLength: e.contentLength,
	}
}

// Close stops the tick loop. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
