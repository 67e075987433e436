package notify

import (
	"sync"
	"testing"
	"time"
)

type recordingView struct {
	mu      sync.Mutex
	message string
	visible bool
	hides   int
}

func (v *recordingView) SetMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = message
}

func (v *recordingView) Show() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
}

func (v *recordingView) Hide() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = false
	v.hides++
}

func (v *recordingView) state() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message, v.visible
}

// manualTimers captures scheduled callbacks so tests decide when they fire
type manualTimers struct {
	delays    []time.Duration
	callbacks []func()
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) *time.Timer {
	m.delays = append(m.delays, d)
	m.callbacks = append(m.callbacks, f)
	return nil
}

func newTestBanner() (*Banner, *recordingView, *manualTimers) {
	view := &recordingView{}
	timers := &manualTimers{}
	banner := NewBanner(view)
	banner.afterFunc = timers.afterFunc
	return banner, view, timers
}

func TestBanner_ShowSchedulesAutoHide(t *testing.T) {
	banner, view, timers := newTestBanner()

	banner.Show("Adresse introuvable")

	message, visible := view.state()
	if message != "Adresse introuvable" || !visible {
		t.Fatalf("Expected visible banner with message, got %q visible=%v", message, visible)
	}
	if len(timers.delays) != 1 || timers.delays[0] != 5000*time.Millisecond {
		t.Fatalf("Expected one 5000ms timer, got %v", timers.delays)
	}

	timers.callbacks[0]()

	if _, visible := view.state(); visible {
		t.Error("Banner should be hidden after the timer fires")
	}
	if banner.Visible() {
		t.Error("Banner state should be hidden after the timer fires")
	}
}

func TestBanner_HideCancelsEarly(t *testing.T) {
	banner, view, timers := newTestBanner()

	banner.Show("boom")
	banner.Hide()

	if _, visible := view.state(); visible {
		t.Error("Hide should hide immediately")
	}

	// the stale timer must not touch a banner shown afterwards
	banner.Show("second")
	timers.callbacks[0]()

	if message, visible := view.state(); !visible || message != "second" {
		t.Errorf("Stale timer hid the newer message: %q visible=%v", message, visible)
	}
}

func TestBanner_NewerMessageKeepsFullDelay(t *testing.T) {
	banner, view, timers := newTestBanner()

	banner.Show("first")
	banner.Show("second")

	timers.callbacks[0]()
	if message, visible := view.state(); !visible || message != "second" {
		t.Fatalf("First timer must not hide the second message: %q visible=%v", message, visible)
	}

	timers.callbacks[1]()
	if _, visible := view.state(); visible {
		t.Error("Second timer should hide the banner")
	}
	if banner.Message() != "second" {
		t.Errorf("Expected last message to be 'second', got %q", banner.Message())
	}
}

func TestBanner_RealTimer(t *testing.T) {
	view := &recordingView{}
	banner := NewBanner(view)
	banner.delay = 10 * time.Millisecond

	banner.Show("short")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !banner.Visible() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Banner did not auto-hide")
}
