// Package notify implements the dashboard's transient status messages.
// There is a single display slot: showing a new toast replaces whatever is
// visible, and each toast clears itself after a fixed delay.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is a short-lived user-facing status message.
type Toast struct {
	// ID is time-based and strictly increasing within a Notifier.
	ID int64
	// Text is the message shown to the user.
	Text string
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithTTL overrides the display duration.
func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) { n.ttl = ttl }
}

// WithScheduler replaces the expiry scheduler. Tests use this to fire
// expirations deterministically.
func WithScheduler(schedule func(time.Duration, func())) Option {
	return func(n *Notifier) { n.schedule = schedule }
}

// Notifier owns the single toast slot. Safe for concurrent use.
type Notifier struct {
	mu       sync.Mutex
	current  *Toast
	lastID   int64
	ttl      time.Duration
	schedule func(time.Duration, func())
	subs     []func(*Toast)
}

// New creates a Notifier with the default TTL and a time.AfterFunc scheduler.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		ttl:      DefaultTTL,
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show displays a message, replacing any current toast, and schedules its
// clearing. The scheduled clear is guarded by ID equality: if a newer toast
// replaced this one in the meantime, the stale clear is a no-op.
func (n *Notifier) Show(text string) Toast {
	n.mu.Lock()

	id := time.Now().UnixMilli()
	if id <= n.lastID {
		id = n.lastID + 1
	}
	n.lastID = id

	toast := Toast{ID: id, Text: text}
	n.current = &toast
	subs := append(([]func(*Toast))(nil), n.subs...)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(&toast)
	}

	n.schedule(n.ttl, func() { n.clear(id) })
	return toast
}

// Current returns the visible toast, or nil.
func (n *Notifier) Current() *Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Subscribe registers a callback invoked on every shown toast and on clears
// (with nil). Used by the CLI presenter to print messages as they happen.
func (n *Notifier) Subscribe(fn func(*Toast)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) clear(id int64) {
	n.mu.Lock()
	if n.current == nil || n.current.ID != id {
		n.mu.Unlock()
		return
	}
	n.current = nil
	subs := append(([]func(*Toast))(nil), n.subs...)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
}
