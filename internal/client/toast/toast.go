// Package toast signals short-lived notices to the view layer. At most one
// toast is shown at a time and exactly one dismissal timer is active.
package toast

import (
	"slices"
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3200 * time.Millisecond

// Kind classifies a toast.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Toast is a visible notice.
type Toast struct {
	Message string
	Kind    Kind
}

// Timer is the subset of *time.Timer the notifier needs.
type Timer interface {
	Stop() bool
}

// Notifier holds the current toast.
type Notifier struct {
	duration  time.Duration
	afterFunc func(d time.Duration, f func()) Timer

	mu        sync.Mutex
	current   *Toast
	timer     Timer
	gen       uint64
	listeners []func(*Toast)
}

// Option customizes a Notifier.
type Option func(*Notifier)

// WithDuration overrides DefaultDuration.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn func(d time.Duration, f func()) Timer) Option {
	return func(n *Notifier) { n.afterFunc = fn }
}

func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		duration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// OnChange registers a listener called with the new toast (nil on dismiss).
// Listeners run outside the notifier lock.
func (n *Notifier) OnChange(fn func(*Toast)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// Show replaces the current toast and restarts the dismissal timer.
func (n *Notifier) Show(message string, kind Kind) {
	t := &Toast{Message: message, Kind: kind}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = t
	n.timer = n.afterFunc(n.duration, func() { n.expire(gen) })
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, t)
}

// Success shows a success toast.
func (n *Notifier) Success(message string) { n.Show(message, Success) }

// Error shows an error toast.
func (n *Notifier) Error(message string) { n.Show(message, Error) }

// Warning shows a warning toast.
func (n *Notifier) Warning(message string) { n.Show(message, Warning) }

// Info shows an informational toast.
func (n *Notifier) Info(message string) { n.Show(message, Info) }

// Current returns a copy of the visible toast, or nil.
func (n *Notifier) Current() *Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	t := *n.current
	return &t
}

// Dismiss hides the current toast immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if n.current == nil {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = nil
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, nil)
}

// expire runs on timer fire; a timer from an older Show is ignored.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || n.current == nil {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, nil)
}

func (n *Notifier) snapshot() []func(*Toast) {
	return slices.Clone(n.listeners)
}

func notify(listeners []func(*Toast), t *Toast) {
	for _, fn := range listeners {
		fn(t)
	}
}
