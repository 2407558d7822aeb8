package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerTickMsg is one scheduled refresh of the timer readout. It carries
// the generation it was scheduled under so stale ticks can be dropped.
type timerTickMsg struct {
	gen int
	now time.Time
}

// Timer is the live elapsed-time readout. Elapsed time is always
// recomputed from the start timestamp on each tick, never accumulated,
// so the readout cannot drift.
type Timer struct {
	start *time.Time
	now   time.Time
	gen   int
}

// NewTimer returns a timer with no active session.
func NewTimer() Timer {
	return Timer{now: time.Now()}
}

// Init starts the once-per-second tick chain.
func (t Timer) Init() tea.Cmd {
	return t.tick()
}

func (t Timer) tick() tea.Cmd {
	gen := t.gen
	return tea.Tick(time.Second, func(now time.Time) tea.Msg {
		return timerTickMsg{gen: gen, now: now}
	})
}

// SetStartTime replaces the reference point. nil means no active session.
// Takes effect on the next tick; the last call within a tick interval wins.
func (t *Timer) SetStartTime(start *time.Time) {
	t.start = start
}

// Stop invalidates the scheduled tick chain, so no recurring work
// outlives the owning view.
func (t *Timer) Stop() {
	t.gen++
}

// Update consumes tick messages. A tick from an old generation is dropped
// without rescheduling, which is how Stop takes effect.
func (t Timer) Update(msg tea.Msg) (Timer, tea.Cmd) {
	tick, ok := msg.(timerTickMsg)
	if !ok || tick.gen != t.gen {
		return t, nil
	}
	t.now = tick.now
	return t, t.tick()
}

// Elapsed returns the whole-second duration since the start time, or zero
// when idle.
func (t Timer) Elapsed() time.Duration {
	if t.start == nil {
		return 0
	}
	d := t.now.Truncate(time.Second).Sub(*t.start)
	if d < 0 {
		return 0
	}
	return d
}

// View renders the readout, green while a session runs.
func (t Timer) View() string {
	s := FormatElapsed(t.Elapsed())
	if t.start != nil {
		return TimerRunningStyle.Render(s)
	}
	return TimerIdleStyle.Render(s)
}

// FormatElapsed renders a duration as H:MM:SS with unbounded hours.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
