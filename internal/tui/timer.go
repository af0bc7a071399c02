package tui

import "time"

// autosaveTimer schedules the periodic draft snapshot. It only runs while
// edit mode is on and restarts from zero every time edit mode is entered.
type autosaveTimer struct {
	interval time.Duration
	running  bool
	due      time.Time
}

func newAutosaveTimer(interval time.Duration) autosaveTimer {
	return autosaveTimer{interval: interval}
}

func (t *autosaveTimer) start(now time.Time) {
	t.running = true
	t.due = now.Add(t.interval)
}

func (t *autosaveTimer) stop() {
	t.running = false
}

// tick reports whether a snapshot is due at now and, if so, schedules the
// next one.
func (t *autosaveTimer) tick(now time.Time) bool {
	if !t.running || now.Before(t.due) {
		return false
	}
	t.due = now.Add(t.interval)
	return true
}

func (t autosaveTimer) remaining(now time.Time) time.Duration {
	if !t.running {
		return 0
	}
	if d := t.due.Sub(now); d > 0 {
		return d
	}
	return 0
}
