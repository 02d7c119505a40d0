package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	fire    func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, fire: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func TestShow_ReplacesAndKeepsOneTimer(t *testing.T) {
	clock := &fakeClock{}
	n := NewNotifier(WithAfterFunc(clock.afterFunc))

	n.Show("A", Success)
	n.Show("B", Error)

	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, Toast{Message: "B", Kind: Error}, *cur)
	assert.Equal(t, 1, clock.active())
	assert.Equal(t, DefaultDuration, clock.timers[1].d)
}

func TestStaleTimerDoesNotClearNewerToast(t *testing.T) {
	clock := &fakeClock{}
	n := NewNotifier(WithAfterFunc(clock.afterFunc))

	n.Show("A", Info)
	n.Show("B", Info)

	// the first timer fires anyway (Stop raced with expiry)
	clock.timers[0].fire()
	require.NotNil(t, n.Current())
	assert.Equal(t, "B", n.Current().Message)

	clock.timers[1].fire()
	assert.Nil(t, n.Current())
}

func TestDismiss(t *testing.T) {
	clock := &fakeClock{}
	n := NewNotifier(WithAfterFunc(clock.afterFunc), WithDuration(time.Second))

	var seen []*Toast
	n.OnChange(func(t *Toast) { seen = append(seen, t) })

	n.Warning("careful")
	assert.Equal(t, time.Second, clock.timers[0].d)
	n.Dismiss()
	n.Dismiss()

	assert.Nil(t, n.Current())
	assert.Equal(t, 0, clock.active())
	require.Len(t, seen, 2)
	assert.Equal(t, "careful", seen[0].Message)
	assert.Nil(t, seen[1])
}

func TestOnChange_ListenerAddedDuringNotify(t *testing.T) {
	clock := &fakeClock{}
	n := NewNotifier(WithAfterFunc(clock.afterFunc))

	var late []*Toast
	var first int
	n.OnChange(func(*Toast) {
		first++
		if first == 1 {
			n.OnChange(func(t *Toast) { late = append(late, t) })
		}
	})

	n.Info("one")
	assert.Empty(t, late)

	n.Info("two")
	require.Len(t, late, 1)
	assert.Equal(t, "two", late[0].Message)
	assert.Equal(t, 2, first)
}

func TestRealTimerExpires(t *testing.T) {
	n := NewNotifier(WithDuration(10 * time.Millisecond))
	n.Success("saved")
	assert.Eventually(t, func() bool { return n.Current() == nil }, time.Second, 5*time.Millisecond)
}
