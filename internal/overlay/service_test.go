package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"prompter-overlay/internal/config"
	"prompter-overlay/internal/scroll"
)

func newTestService(t *testing.T) (*Service, *config.Service) {
	t.Helper()

	configSvc, err := config.NewAt(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("config.NewAt failed: %v", err)
	}

	engine := scroll.New(scroll.DefaultOptions())
	t.Cleanup(engine.Close)

	svc := New(configSvc, engine, func() bool { return false }, func() bool { return true })
	return svc, configSvc
}

func TestService_GetDisplayInfo(t *testing.T) {
	svc, _ := newTestService(t)
	svc.SetScript("line one\nline two\nline three")

	info := svc.GetDisplayInfo()
	if info.Script != "line one\nline two\nline three" {
		t.Errorf("Script = %q", info.Script)
	}
	if info.LineCount != 3 {
		t.Errorf("LineCount = %d; want 3", info.LineCount)
	}
	if info.Locked {
		t.Error("Locked = true; want false from the wired accessor")
	}
	if !info.CaptureExcluded {
		t.Error("CaptureExcluded = false; want true from the wired accessor")
	}
	if !info.PanelVisible {
		t.Error("PanelVisible = false; panel starts visible")
	}
	if info.Style.FontSize != 18 {
		t.Errorf("Style.FontSize = %d; want default 18", info.Style.FontSize)
	}
}

func TestService_LineCount(t *testing.T) {
	tests := []struct {
		script string
		want   int
	}{
		{"", 0},
		{"one line", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
	}

	for _, tc := range tests {
		if got := lineCount(tc.script); got != tc.want {
			t.Errorf("lineCount(%q) = %d; want %d", tc.script, got, tc.want)
		}
	}
}

func TestService_SetStyleClampsAndPersists(t *testing.T) {
	svc, configSvc := newTestService(t)

	err := svc.SetStyle(config.StyleConfig{
		FontFamily: "Courier",
		FontSize:   200,
		FontColor:  "#ffd900",
		Opacity:    0.01,
	})
	if err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	style := svc.Style()
	if style.FontSize != 72 {
		t.Errorf("FontSize = %d; want clamped 72", style.FontSize)
	}
	if style.Opacity != 0.1 {
		t.Errorf("Opacity = %v; want clamped 0.1", style.Opacity)
	}

	persisted := configSvc.Get().Style
	if persisted.FontFamily != "Courier" || persisted.FontSize != 72 {
		t.Errorf("persisted style = %+v; want clamped values written through", persisted)
	}
}

func TestService_CycleColor(t *testing.T) {
	svc, configSvc := newTestService(t)

	// Default color is the first palette entry; one press moves to the second.
	if got := svc.CycleColor(); got != colorPalette[1] {
		t.Errorf("first cycle = %s; want %s", got, colorPalette[1])
	}

	// Cycling through the full palette wraps back around.
	for i := 2; i <= len(colorPalette); i++ {
		svc.CycleColor()
	}
	if got := svc.Style().FontColor; got != colorPalette[1] {
		t.Errorf("after full cycle color = %s; want %s", got, colorPalette[1])
	}

	if persisted := configSvc.Get().Style.FontColor; persisted != colorPalette[1] {
		t.Errorf("persisted color = %s; want %s", persisted, colorPalette[1])
	}
}

func TestService_CycleColorUnknownColorRestartsPalette(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SetStyle(config.StyleConfig{
		FontFamily: "Arial", FontSize: 18, FontColor: "#123456", Opacity: 0.8,
	}); err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	if got := svc.CycleColor(); got != colorPalette[0] {
		t.Errorf("cycle from off-palette color = %s; want %s", got, colorPalette[0])
	}
}

func TestService_CycleColorMatchesCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.SetStyle(config.StyleConfig{
		FontFamily: "Arial", FontSize: 18, FontColor: "#FFD900", Opacity: 0.8,
	}); err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	if got := svc.CycleColor(); got != colorPalette[2] {
		t.Errorf("cycle from uppercase palette color = %s; want %s", got, colorPalette[2])
	}
}

func TestService_CycleColorSurvivesPersistFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	configSvc, err := config.NewAt(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("config.NewAt failed: %v", err)
	}

	engine := scroll.New(scroll.DefaultOptions())
	t.Cleanup(engine.Close)
	svc := New(configSvc, engine, func() bool { return false }, func() bool { return false })

	// Writes fail from here on; the in-memory color must still advance.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	if got := svc.CycleColor(); got != colorPalette[1] {
		t.Errorf("CycleColor = %s; want %s", got, colorPalette[1])
	}
	if got := svc.Style().FontColor; got != colorPalette[1] {
		t.Errorf("in-memory color = %s; want %s", got, colorPalette[1])
	}
}

func TestService_TogglePanel(t *testing.T) {
	svc, _ := newTestService(t)

	if !svc.PanelVisible() {
		t.Fatal("panel starts visible")
	}
	if svc.TogglePanel() {
		t.Error("first toggle should hide the panel")
	}
	if !svc.TogglePanel() {
		t.Error("second toggle should show the panel again")
	}
}
