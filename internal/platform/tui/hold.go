package tui

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// HoldTracker turns a terminal's key stream into press and release edges.
// Terminals report only key-downs and repeat them while a key is held, so a
// key counts as released once no repeat arrived for the hold timeout.
type HoldTracker struct {
	timeout  time.Duration
	lastSeen map[core.Action]time.Time
}

// NewHoldTracker creates a tracker with the given hold timeout.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{
		timeout:  timeout,
		lastSeen: make(map[core.Action]time.Time),
	}
}

// Press notes a key-down or repeat at now. It reports true only for the
// first key-down of a hold.
func (h *HoldTracker) Press(a core.Action, now time.Time) bool {
	_, held := h.lastSeen[a]
	h.lastSeen[a] = now
	return !held
}

// Expire returns the keys whose hold timed out at now, in action order,
// and forgets them.
func (h *HoldTracker) Expire(now time.Time) []core.Action {
	var out []core.Action
	for a, seen := range h.lastSeen {
		if now.Sub(seen) >= h.timeout {
			out = append(out, a)
			delete(h.lastSeen, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Held reports whether a key is currently considered held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.lastSeen[a]
	return ok
}

// Reset forgets every held key.
func (h *HoldTracker) Reset() {
	clear(h.lastSeen)
}

// SetTimeout changes the hold timeout.
func (h *HoldTracker) SetTimeout(d time.Duration) {
	h.timeout = d
}
