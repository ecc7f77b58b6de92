package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds all persisted application settings. The core reads these
// once at startup; the settings panel writes them back through the Update
// helpers.
type Config struct {
	Window   WindowConfig      `json:"window"`
	Style    StyleConfig       `json:"style"`
	Scroll   ScrollConfig      `json:"scroll"`
	Bindings map[string]string `json:"bindings"` // action name -> chord
}

// WindowConfig holds overlay window geometry.
type WindowConfig struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StyleConfig holds the text rendering parameters.
type StyleConfig struct {
	FontFamily string  `json:"font_family"`
	FontSize   int     `json:"font_size"`
	FontColor  string  `json:"font_color"` // CSS color
	Opacity    float64 `json:"opacity"`    // 0..1
}

// ScrollConfig holds the autoscroll parameters.
type ScrollConfig struct {
	Speed      float64 `json:"speed"` // content units per tick
	MinSpeed   float64 `json:"min_speed"`
	MaxSpeed   float64 `json:"max_speed"`
	SpeedDelta float64 `json:"speed_delta"` // per speed-up/down chord press
	StepSize   float64 `json:"step_size"`   // per manual step chord press
	TickMs     int     `json:"tick_ms"`
}

// Service manages configuration persistence. The mutex matters here:
// hotkey-triggered updates arrive on the dispatch goroutine while the
// settings panel writes through the window bindings.
type Service struct {
	mu       sync.Mutex
	config   *Config
	filePath string
}

// New creates a config service backed by ~/.prompter/config.json, loading
// the existing file or writing the defaults on first run.
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".prompter")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return NewAt(filepath.Join(configDir, "config.json"))
}

// NewAt creates a config service backed by an explicit file path.
func NewAt(configPath string) (*Service, error) {
	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(),
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return service, nil
}

// getDefaultConfig returns the default configuration. Style defaults match
// the classic teleprompter look: 18pt white text at 80% opacity.
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  600,
			Height: 400,
		},
		Style: StyleConfig{
			FontFamily: "Arial",
			FontSize:   18,
			FontColor:  "#ffffff",
			Opacity:    0.8,
		},
		Scroll: ScrollConfig{
			Speed:      1,
			MinSpeed:   1,
			MaxSpeed:   10,
			SpeedDelta: 1,
			StepSize:   10,
			TickMs:     33,
		},
		Bindings: nil, // nil means built-in defaults
	}
}

// Get returns a copy of the current configuration. Callers work on the
// copy; writes go through the Update helpers.
func (s *Service) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.config
}

// Set replaces the configuration.
func (s *Service) Set(config Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.config = config
}

// Load loads configuration from file.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, s.config)
}

// Save saves configuration to file.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the config file. Callers hold the mutex.
func (s *Service) save() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file.
func (s *Service) Path() string {
	return s.filePath
}

// UpdateStyle updates the style settings and persists them.
func (s *Service) UpdateStyle(style StyleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Style = style
	return s.save()
}

// UpdateWindow updates the window geometry and persists it.
func (s *Service) UpdateWindow(window WindowConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Window = window
	return s.save()
}

// UpdateScroll updates the autoscroll parameters and persists them.
func (s *Service) UpdateScroll(scroll ScrollConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Scroll = scroll
	return s.save()
}

// UpdateBindings replaces the hotkey bindings and persists them. Callers
// must validate the new table first; this only stores it. The map is
// replaced wholesale, never mutated, so copies handed out by Get stay
// safe to read.
func (s *Service) UpdateBindings(bindings map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Bindings = bindings
	return s.save()
}
