package capture

import (
	"errors"
	"sync"
	"testing"
)

func TestController_SetExcludedIdempotent(t *testing.T) {
	calls := 0
	c := New(func(excluded bool) error {
		calls++
		return nil
	})

	if err := c.SetExcluded(true); err != nil {
		t.Fatalf("SetExcluded(true) failed: %v", err)
	}
	if err := c.SetExcluded(true); err != nil {
		t.Fatalf("second SetExcluded(true) failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("apply calls = %d; want 1 (same value twice is a no-op)", calls)
	}
	if !c.Excluded() {
		t.Error("Expected excluded state")
	}
}

func TestController_SetExcludedRoundTrip(t *testing.T) {
	var applied []bool
	c := New(func(excluded bool) error {
		applied = append(applied, excluded)
		return nil
	})

	// Initial state is not-excluded; setting false must not call the OS.
	if err := c.SetExcluded(false); err != nil {
		t.Fatalf("SetExcluded(false) failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("apply calls = %d; want 0", len(applied))
	}

	c.SetExcluded(true)
	c.SetExcluded(false)

	want := []bool{true, false}
	if len(applied) != len(want) {
		t.Fatalf("apply calls = %v; want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Errorf("apply[%d] = %v; want %v", i, applied[i], want[i])
		}
	}
}

func TestController_FailureLeavesStateUnchanged(t *testing.T) {
	c := New(func(excluded bool) error {
		return ErrUnavailable
	})

	err := c.SetExcluded(true)
	if err == nil {
		t.Fatal("Expected error from unavailable platform")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v; want ErrUnavailable", err)
	}
	if c.Excluded() {
		t.Error("State must not change when the OS call fails")
	}
}

func TestController_Toggle(t *testing.T) {
	c := New(func(excluded bool) error { return nil })

	excluded, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !excluded {
		t.Error("First toggle should exclude")
	}

	excluded, err = c.Toggle()
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if excluded {
		t.Error("Second toggle should include again")
	}
}

func TestController_ConcurrentTogglesEachFlipOnce(t *testing.T) {
	calls := 0
	c := New(func(excluded bool) error {
		calls++
		return nil
	})

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

	// Every toggle flips, so an even count lands back at the start and
	// none of the flips degenerates into a same-value no-op.
	if calls != toggles {
		t.Errorf("apply calls = %d; want %d", calls, toggles)
	}
	if c.Excluded() {
		t.Error("even toggle count must end not-excluded")
	}
}
