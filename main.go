package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"

	"prompter-overlay/internal/capture"
	"prompter-overlay/internal/config"
	"prompter-overlay/internal/hotkeys"
	"prompter-overlay/internal/input"
	"prompter-overlay/internal/overlay"
	"prompter-overlay/internal/scroll"
)

//go:embed all:frontend/dist
var assets embed.FS

// windowTitle is also how the platform code resolves the native handle.
const windowTitle = "Prompter Overlay"

// App is the composition root. It owns one instance of each controller and
// is the only place with access to the native window handle.
type App struct {
	ctx     context.Context
	config  *config.Service
	overlay *overlay.Service
	engine  *scroll.Engine
	inputs  *input.Controller
	capture *capture.Controller

	table      *hotkeys.Table
	dispatcher *hotkeys.Dispatcher
	emergency  *hotkeys.EmergencyWatcher

	overlayHWND  uintptr
	clickThrough bool
}

// NewApp creates the application around a loaded config and a validated
// hotkey table.
func NewApp(configSvc *config.Service, table *hotkeys.Table) *App {
	return &App{config: configSvc, table: table}
}

// OnStartup wires the controllers once the window exists.
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	scrollCfg := a.config.Get().Scroll
	a.engine = scroll.New(scroll.Options{
		Speed:        scrollCfg.Speed,
		MinSpeed:     scrollCfg.MinSpeed,
		MaxSpeed:     scrollCfg.MaxSpeed,
		TickInterval: time.Duration(scrollCfg.TickMs) * time.Millisecond,
	})

	a.capture = capture.New(a.applyCaptureAffinity)
	a.inputs = input.New(a.applyClickThrough)
	a.overlay = overlay.New(a.config, a.engine,
		func() bool { return a.inputs.CurrentMode() == input.ModeLocked },
		func() bool { return a.capture.Excluded() },
	)

	a.startEmergencyWatcher()
	a.startDispatcher()

	// Hide the prompt from capture by default; a presenter who wants to be
	// visible in recordings can toggle it back from the panel.
	if err := a.capture.SetExcluded(true); err != nil {
		if errors.Is(err, capture.ErrUnavailable) {
			slog.Warn("capture exclusion unavailable, overlay will be visible in captures", "error", err)
		} else {
			slog.Error("enable capture exclusion", "error", err)
		}
	}
}

// OnShutdown releases the timer and every OS-level hook.
func (a *App) OnShutdown(ctx context.Context) {
	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}
	if a.emergency != nil {
		a.emergency.Stop()
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if a.config != nil {
		if err := a.config.Save(); err != nil {
			slog.Error("save config", "error", err)
		}
	}
}

// startEmergencyWatcher installs the escape hatch. Locked mode stays
// unavailable while the watcher is down, even when the regular dispatcher
// registered fine.
func (a *App) startEmergencyWatcher() {
	chord, ok := a.table.ChordFor(hotkeys.ActionEmergencyUnlock)
	if !ok {
		slog.Warn("no emergency unlock binding, lock mode disabled")
		a.inputs.SetEscapeHatch(false)
		return
	}

	a.emergency = hotkeys.NewEmergencyWatcher(chord, func() {
		if err := a.inputs.EmergencyUnlock(); err != nil {
			slog.Error("emergency unlock", "error", err)
		} else {
			slog.Info("emergency unlock fired", "chord", chord.String())
		}
	})

	if err := a.emergency.Start(); err != nil {
		slog.Warn("emergency watcher failed to start, lock mode disabled", "error", err)
		a.inputs.SetEscapeHatch(false)
		return
	}
	a.inputs.SetEscapeHatch(true)
}

func (a *App) startDispatcher() {
	a.dispatcher = hotkeys.NewDispatcher(a.table, a.handleAction)
	if err := a.dispatcher.Start(); err != nil {
		slog.Warn("hotkey dispatcher degraded", "error", err)
	}
}

// handleAction routes a dispatched hotkey command to its controller. It
// runs on the dispatcher's single dispatch goroutine.
func (a *App) handleAction(action hotkeys.Action) {
	scrollCfg := a.config.Get().Scroll

	switch action {
	case hotkeys.ActionToggleLock:
		mode, err := a.inputs.Toggle()
		if err != nil {
			slog.Error("toggle lock", "error", err)
			return
		}
		slog.Info("input mode changed", "mode", mode.String())
	case hotkeys.ActionEmergencyUnlock:
		if err := a.inputs.EmergencyUnlock(); err != nil {
			slog.Error("emergency unlock", "error", err)
		}
	case hotkeys.ActionToggleScroll:
		running := a.engine.Toggle()
		slog.Info("autoscroll toggled", "running", running)
	case hotkeys.ActionSpeedUp:
		a.engine.AdjustSpeed(scrollCfg.SpeedDelta)
	case hotkeys.ActionSpeedDown:
		a.engine.AdjustSpeed(-scrollCfg.SpeedDelta)
	case hotkeys.ActionStepUp:
		a.engine.Step(-scrollCfg.StepSize)
	case hotkeys.ActionStepDown:
		a.engine.Step(scrollCfg.StepSize)
	case hotkeys.ActionCycleColor:
		a.overlay.CycleColor()
	case hotkeys.ActionTogglePanel:
		a.overlay.TogglePanel()
	}
}

// Frontend API methods (bound to the settings panel and prompt view)

// GetDisplayInfo returns the snapshot the frontend polls to repaint.
func (a *App) GetDisplayInfo() *overlay.DisplayInfo {
	return a.overlay.GetDisplayInfo()
}

// SetScript replaces the prompt text and rewinds to the top.
func (a *App) SetScript(text string) {
	a.overlay.SetScript(text)
	a.engine.SetPosition(0)
}

// SetContentLength reports the rendered scrollable extent after a reflow.
func (a *App) SetContentLength(length float64) {
	a.engine.SetContentLength(length)
}

// ToggleScroll flips autoscroll and reports whether it is now running.
func (a *App) ToggleScroll() bool {
	return a.engine.Toggle()
}

// SetSpeed applies an absolute speed from the panel slider and returns the
// clamped value.
func (a *App) SetSpeed(speed float64) float64 {
	return a.engine.SetSpeed(speed)
}

// Step performs a manual scroll adjustment and returns the new position.
func (a *App) Step(delta float64) float64 {
	return a.engine.Step(delta)
}

// ToggleLock flips the input mode and returns the resulting mode name.
func (a *App) ToggleLock() (string, error) {
	mode, err := a.inputs.Toggle()
	return mode.String(), err
}

// EmergencyUnlock forces the window back to normal interaction.
func (a *App) EmergencyUnlock() error {
	return a.inputs.EmergencyUnlock()
}

// ToggleCaptureExclusion flips capture visibility and reports whether the
// overlay is now hidden from captures.
func (a *App) ToggleCaptureExclusion() (bool, error) {
	excluded, err := a.capture.Toggle()
	if err != nil && errors.Is(err, capture.ErrUnavailable) {
		slog.Warn("capture exclusion unavailable", "error", err)
	}
	return excluded, err
}

// UpdateStyle applies and persists new style parameters.
func (a *App) UpdateStyle(style config.StyleConfig) error {
	return a.overlay.SetStyle(style)
}

// CycleColor advances the font color and returns the new value.
func (a *App) CycleColor() string {
	return a.overlay.CycleColor()
}

// TogglePanel flips the settings panel and reports its visibility.
func (a *App) TogglePanel() bool {
	return a.overlay.TogglePanel()
}

// GetBindings returns the active chord assignments for the panel.
func (a *App) GetBindings() map[string]string {
	return a.table.Spec()
}

// UpdateBindings replaces the hotkey table. The replacement is validated
// exactly like the startup table; on success the dispatcher is restarted
// on the new chords and the bindings are persisted.
func (a *App) UpdateBindings(bindings map[string]string) error {
	table, err := hotkeys.NewTable(bindings)
	if err != nil {
		return fmt.Errorf("invalid bindings: %w", err)
	}

	a.dispatcher.Stop()
	a.table = table
	a.startDispatcher()

	return a.config.UpdateBindings(bindings)
}

// UpdateWindowGeometry persists the overlay position and size.
func (a *App) UpdateWindowGeometry(x, y, width, height int) error {
	return a.config.UpdateWindow(config.WindowConfig{X: x, Y: y, Width: width, Height: height})
}

// bindingsOrDefaults returns the persisted bindings, or the built-in table
// when the user never customized them.
func bindingsOrDefaults(bindings map[string]string) map[string]string {
	if len(bindings) == 0 {
		return hotkeys.DefaultBindings()
	}
	return bindings
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	})))

	configSvc, err := config.New()
	if err != nil {
		slog.Error("initialize config", "error", err)
		os.Exit(1)
	}

	// Validate the hotkey table before any window exists: a duplicate
	// chord must prevent launch, not silently drop a binding.
	table, err := hotkeys.NewTable(bindingsOrDefaults(configSvc.Get().Bindings))
	if err != nil {
		slog.Error("invalid hotkey bindings", "error", err, "config", configSvc.Path())
		os.Exit(1)
	}

	app := NewApp(configSvc, table)
	windowCfg := configSvc.Get().Window

	err = wails.Run(&options.App{
		Title:  windowTitle,
		Width:  windowCfg.Width,
		Height: windowCfg.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:        true,
		AlwaysOnTop:      true,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		OnStartup:  app.OnStartup,
		OnShutdown: app.OnShutdown,
		Bind:       []interface{}{app},
	})

	if err != nil {
		slog.Error("run overlay", "error", err)
		os.Exit(1)
	}
}
