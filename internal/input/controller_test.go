package input

import (
	"errors"
	"sync"
	"testing"
)

func newTestController(applyErr error) (*Controller, *[]bool) {
	var applied []bool
	c := New(func(clickThrough bool) error {
		if applyErr != nil {
			return applyErr
		}
		applied = append(applied, clickThrough)
		return nil
	})
	c.SetEscapeHatch(true)
	return c, &applied
}

func TestController_LockUnlock(t *testing.T) {
	c, applied := newTestController(nil)

	if c.CurrentMode() != ModeUnlocked {
		t.Fatalf("initial mode = %v; want unlocked", c.CurrentMode())
	}

	if err := c.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if c.CurrentMode() != ModeLocked {
		t.Error("Expected locked mode after Lock")
	}

	if err := c.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if c.CurrentMode() != ModeUnlocked {
		t.Error("Expected unlocked mode after Unlock")
	}

	want := []bool{true, false}
	if len(*applied) != len(want) {
		t.Fatalf("window attribute calls = %v; want %v", *applied, want)
	}
}

func TestController_LockTwiceIsNoop(t *testing.T) {
	c, applied := newTestController(nil)

	c.Lock()
	if err := c.Lock(); err != nil {
		t.Fatalf("second Lock failed: %v", err)
	}

	if len(*applied) != 1 {
		t.Errorf("window attribute calls = %d; want 1", len(*applied))
	}
}

func TestController_EmergencyUnlockAfterAnySequence(t *testing.T) {
	sequences := [][]string{
		{},
		{"lock"},
		{"lock", "unlock"},
		{"lock", "unlock", "lock"},
		{"lock", "lock", "unlock", "lock", "lock"},
		{"unlock", "unlock"},
	}

	for _, seq := range sequences {
		c, _ := newTestController(nil)
		for _, op := range seq {
			if op == "lock" {
				c.Lock()
			} else {
				c.Unlock()
			}
		}

		if err := c.EmergencyUnlock(); err != nil {
			t.Fatalf("EmergencyUnlock after %v failed: %v", seq, err)
		}
		if c.CurrentMode() != ModeUnlocked {
			t.Errorf("mode after %v + emergency unlock = %v; want unlocked", seq, c.CurrentMode())
		}
	}
}

func TestController_LockRefusedWithoutEscapeHatch(t *testing.T) {
	c, applied := newTestController(nil)
	c.SetEscapeHatch(false)

	err := c.Lock()
	if !errors.Is(err, ErrNoEscapeHatch) {
		t.Fatalf("Lock error = %v; want ErrNoEscapeHatch", err)
	}
	if c.CurrentMode() != ModeUnlocked {
		t.Error("Mode must stay unlocked when lock is refused")
	}
	if len(*applied) != 0 {
		t.Error("No window attribute call expected when lock is refused")
	}
}

func TestController_LockFailureLeavesModeUnchanged(t *testing.T) {
	applyErr := errors.New("window handle not found")
	c, _ := newTestController(applyErr)

	err := c.Lock()
	if err == nil {
		t.Fatal("Expected Lock to fail")
	}
	if !errors.Is(err, applyErr) {
		t.Errorf("error = %v; want wrapped apply error", err)
	}
	if c.CurrentMode() != ModeUnlocked {
		t.Error("Failed Lock must not leave the controller locked")
	}
}

func TestController_EmergencyUnlockForcesModeDespiteApplyFailure(t *testing.T) {
	applyErr := errors.New("attribute update rejected")
	var failing bool
	c := New(func(clickThrough bool) error {
		if failing {
			return applyErr
		}
		return nil
	})
	c.SetEscapeHatch(true)

	if err := c.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	failing = true
	err := c.EmergencyUnlock()
	if !errors.Is(err, applyErr) {
		t.Errorf("error = %v; want wrapped apply error", err)
	}
	if c.CurrentMode() != ModeUnlocked {
		t.Error("EmergencyUnlock must restore unlocked mode even when the OS call fails")
	}
}

func TestController_Toggle(t *testing.T) {
	c, _ := newTestController(nil)

	mode, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if mode != ModeLocked {
		t.Errorf("mode after first toggle = %v; want locked", mode)
	}

	mode, err = c.Toggle()
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if mode != ModeUnlocked {
		t.Errorf("mode after second toggle = %v; want unlocked", mode)
	}
}

func TestController_ConcurrentTogglesAlternate(t *testing.T) {
	c, applied := newTestController(nil)

	const toggles = 100
	var wg sync.WaitGroup
	wg.Add(toggles)
	for i := 0; i < toggles; i++ {
		go func() {
			defer wg.Done()
			c.Toggle()
		}()
	}
	wg.Wait()

	// Each toggle flips exactly once, so the attribute calls alternate
	// lock/unlock and an even count ends unlocked.
	if len(*applied) != toggles {
		t.Fatalf("window attribute calls = %d; want %d", len(*applied), toggles)
	}
	for i, clickThrough := range *applied {
		if want := i%2 == 0; clickThrough != want {
			t.Fatalf("apply[%d] = %v; want %v (strict alternation)", i, clickThrough, want)
		}
	}
	if c.CurrentMode() != ModeUnlocked {
		t.Error("even toggle count must end unlocked")
	}
}

func TestMode_String(t *testing.T) {
	if ModeUnlocked.String() != "unlocked" || ModeLocked.String() != "locked" {
		t.Errorf("Mode strings = %q, %q", ModeUnlocked.String(), ModeLocked.String())
	}
}
