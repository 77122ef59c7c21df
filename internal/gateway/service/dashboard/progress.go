package dashboard

import (
	"sync"
	"time"
)

type Stage string

const (
	StageClassifying Stage = "classifying"
	StageSignals     Stage = "signals"
	StageSkeleton    Stage = "skeleton"
	StageLayout      Stage = "layout"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Event is one progress notification of a synthesis run, streamed to watch
// subscribers in publish order.
type Event struct {
	DashboardID string    `json:"dashboardId"`
	Stage       Stage     `json:"stage"`
	Message     string    `json:"message,omitempty"`
	At          time.Time `json:"at"`
}

// progressHub fans synthesis events out to websocket subscribers. Slow
// subscribers drop events instead of blocking the pipeline.
type progressHub struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newProgressHub() *progressHub {
	return &progressHub{subs: make(map[int]chan Event)}
}

func (h *progressHub) publish(ev Event) {
	if h == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *progressHub) subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Event, 64)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Subscribe registers a watch subscriber. The returned cancel must be called
// when the subscriber goes away.
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.progress.subscribe()
}
