package notify

import (
	"sync"
	"time"
)

// AutoHideDelay is how long an error stays visible
const AutoHideDelay = 5000 * time.Millisecond

// View is the surface a Banner drives. Implementations must be safe to call
// from the timer goroutine.
type View interface {
	SetMessage(message string)
	Show()
	Hide()
}

// Banner is a transient notification that hides itself after a delay. A new
// Show supersedes the pending auto-hide of the previous message, so the latest
// message always stays up for the full delay.
type Banner struct {
	mu         sync.Mutex
	view       View
	delay      time.Duration
	afterFunc  func(time.Duration, func()) *time.Timer
	timer      *time.Timer
	generation uint64
	visible    bool
	message    string
}

// NewBanner creates a banner driving view
func NewBanner(view View) *Banner {
	return &Banner{
		view:      view,
		delay:     AutoHideDelay,
		afterFunc: time.AfterFunc,
	}
}

// Show displays message and schedules the auto-hide
func (b *Banner) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	gen := b.generation
	b.message = message
	b.visible = true

	b.view.SetMessage(message)
	b.view.Show()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = b.afterFunc(b.delay, func() { b.expire(gen) })
}

// Hide hides the banner immediately
func (b *Banner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.visible = false
	b.view.Hide()
}

// Visible reports whether the banner is currently shown
func (b *Banner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Message returns the last message shown
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// a later Show or Hide owns the banner now
	if gen != b.generation {
		return
	}
	b.timer = nil
	b.visible = false
	b.view.Hide()
}
