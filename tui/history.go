package tui

import "strings"

// history keeps recently submitted commands for Up/Down recall. The text
// typed before browsing started is kept as a draft and handed back when the
// player walks past the newest entry.
type history struct {
	entries []string
	limit   int
	pos     int // len(entries) while not browsing
	draft   string
}

func newHistory(limit int) *history {
	return &history{entries: make([]string, 0, limit), limit: limit}
}

// push records a submitted command and stops browsing. Repeat shortcuts and
// consecutive duplicates are not stored.
func (h *history) push(cmd string) {
	defer h.reset()
	switch strings.ToLower(cmd) {
	case "again", "g":
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	if len(h.entries) == h.limit {
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.entries = append(h.entries, cmd)
}

// prev steps to an older entry, saving current as the draft on the first
// step. It stays on the oldest entry once reached.
func (h *history) prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.browsing() {
		h.pos = max(0, h.pos-1)
	} else {
		h.draft = current
		h.pos = len(h.entries) - 1
	}
	return h.entries[h.pos], true
}

// next steps to a newer entry. Past the newest it returns the draft and
// stops browsing; ok is false when nothing was being browsed.
func (h *history) next() (string, bool) {
	if !h.browsing() {
		return "", false
	}
	h.pos++
	if h.pos < len(h.entries) {
		return h.entries[h.pos], true
	}
	draft := h.draft
	h.reset()
	return draft, true
}

func (h *history) browsing() bool { return h.pos < len(h.entries) }

func (h *history) reset() {
	h.pos = len(h.entries)
	h.draft = ""
}
