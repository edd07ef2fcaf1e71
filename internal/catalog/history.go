package catalog

import "github.com/hpungsan/reel/internal/errors"

// History is a capacity-bound stack of entry ids. The newest id is on top;
// pushing at capacity evicts the oldest id from the bottom.
type History struct {
	ids     []string
	maxSize int
}

// NewHistory creates an empty history holding at most maxSize ids.
func NewHistory(maxSize int) (*History, error) {
	if maxSize <= 0 {
		return nil, errors.NewInvalidInput("history capacity must be positive")
	}
	return &History{
		ids:     make([]string, 0, maxSize),
		maxSize: maxSize,
	}, nil
}

// Push adds id as the most recent item. It reports the evicted id, if any.
// Duplicates are kept: watching the same entry twice records it twice.
func (h *History) Push(id string) (evicted string, ok bool) {
	if len(h.ids) >= h.maxSize {
		evicted, ok = h.ids[0], true
		h.ids = append(h.ids[:0], h.ids[1:]...)
	}
	h.ids = append(h.ids, id)
	return evicted, ok
}

// Pop removes and returns the most recent id.
func (h *History) Pop() (string, bool) {
	if len(h.ids) == 0 {
		return "", false
	}
	last := len(h.ids) - 1
	id := h.ids[last]
	h.ids = h.ids[:last]
	return id, true
}

// Peek returns the most recent id without removing it.
func (h *History) Peek() (string, bool) {
	if len(h.ids) == 0 {
		return "", false
	}
	return h.ids[len(h.ids)-1], true
}

// All returns the ids newest first.
func (h *History) All() []string {
	out := make([]string, len(h.ids))
	for i, id := range h.ids {
		out[len(h.ids)-1-i] = id
	}
	return out
}

func (h *History) Len() int { return len(h.ids) }

func (h *History) Cap() int { return h.maxSize }
