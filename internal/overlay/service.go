package overlay

import (
	"log/slog"
	"strings"
	"sync"

	"prompter-overlay/internal/config"
	"prompter-overlay/internal/scroll"
)

// colorPalette is the cycle order for the font-color hotkey.
var colorPalette = []string{
	"#ffffff", // white
	"#ffd900", // yellow
	"#00e5ff", // cyan
	"#6dff6d", // green
	"#ff9d00", // orange
	"#ff6de1", // magenta
}

// Service owns the overlay display state: the script text, the style
// parameters, and the settings-panel visibility. Scroll state and the two
// window-attribute modes live with their controllers; the service reads
// them through narrow accessors to compose display snapshots, it never
// keeps copies.
type Service struct {
	config *config.Service
	scroll *scroll.Engine

	// mode accessors wired by the composition root
	locked   func() bool
	excluded func() bool

	mu           sync.RWMutex
	script       string
	style        config.StyleConfig
	panelVisible bool
}

// New creates the overlay service seeded from the persisted style.
func New(configSvc *config.Service, engine *scroll.Engine, locked, excluded func() bool) *Service {
	return &Service{
		config:       configSvc,
		scroll:       engine,
		locked:       locked,
		excluded:     excluded,
		style:        configSvc.Get().Style,
		panelVisible: true,
	}
}

// DisplayInfo is the snapshot the frontend polls to repaint.
type DisplayInfo struct {
	Script          string             `json:"script"`
	LineCount       int                `json:"line_count"`
	Position        float64            `json:"position"`
	Speed           float64            `json:"speed"`
	Running         bool               `json:"running"`
	ContentLength   float64            `json:"content_length"`
	Locked          bool               `json:"locked"`
	CaptureExcluded bool               `json:"capture_excluded"`
	PanelVisible    bool               `json:"panel_visible"`
	Style           config.StyleConfig `json:"style"`
}

// GetDisplayInfo composes the current overlay state for rendering.
func (s *Service) GetDisplayInfo() *DisplayInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.scroll.Snapshot()
	return &DisplayInfo{
		Script:          s.script,
		LineCount:       lineCount(s.script),
		Position:        snap.Position,
		Speed:           snap.Speed,
		Running:         snap.Running,
		ContentLength:   snap.ContentLength,
		Locked:          s.locked(),
		CaptureExcluded: s.excluded(),
		PanelVisible:    s.panelVisible,
		Style:           s.style,
	}
}

// SetScript replaces the prompt text. The scrollable extent depends on the
// rendered layout, so the frontend reports it separately after reflow.
func (s *Service) SetScript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = text
}

// Script returns the current prompt text.
func (s *Service) Script() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.script
}

// Style returns the current style parameters.
func (s *Service) Style() config.StyleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// SetStyle replaces the style parameters and persists them. Opacity is
// clamped to [0.1, 1] so the overlay can never become fully invisible to
// its own user.
func (s *Service) SetStyle(style config.StyleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if style.Opacity < 0.1 {
		style.Opacity = 0.1
	}
	if style.Opacity > 1 {
		style.Opacity = 1
	}
	if style.FontSize < 8 {
		style.FontSize = 8
	}
	if style.FontSize > 72 {
		style.FontSize = 72
	}
	s.style = style
	return s.config.UpdateStyle(style)
}

// CycleColor advances the font color through the palette and returns the
// new color. Colors set from the panel that are not in the palette restart
// the cycle at the first entry.
func (s *Service) CycleColor() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := colorPalette[0]
	for i, c := range colorPalette {
		if strings.EqualFold(c, s.style.FontColor) {
			next = colorPalette[(i+1)%len(colorPalette)]
			break
		}
	}
	s.style.FontColor = next
	// The in-memory color is already current; a failed write only costs
	// persistence across restarts.
	if err := s.config.UpdateStyle(s.style); err != nil {
		slog.Warn("persist font color", "error", err)
	}
	return next
}

// TogglePanel flips the settings-panel visibility and reports the new
// state. The panel widget itself lives in the frontend.
func (s *Service) TogglePanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelVisible = !s.panelVisible
	return s.panelVisible
}

// PanelVisible reports whether the settings panel is shown.
func (s *Service) PanelVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panelVisible
}

func lineCount(script string) int {
	if script == "" {
		return 0
	}
	return strings.Count(script, "\n") + 1
}
