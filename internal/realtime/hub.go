// Package realtime owns the live channels that keep concurrent viewers of a
// resource consistent. Services publish committed mutations here; each viewer
// holds at most one subscription per resource key.
package realtime

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/logger"
)

var (
	activeSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studycircle_active_subscriptions",
			Help: "Number of live resource subscriptions",
		},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studycircle_events_published_total",
			Help: "Events fanned out to subscribers",
		},
		[]string{"entity", "op"},
	)

	slowSubscribersDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studycircle_slow_subscribers_dropped_total",
			Help: "Subscriptions closed because their event buffer overflowed",
		},
	)
)

// Hub fans committed mutations out to subscribers, per resource key, in
// publish order. All channel sends and closes happen under the hub lock, so
// the usual send-on-closed races cannot occur.
type Hub struct {
	mu      sync.Mutex
	subs    map[domain.ResourceKey]map[domain.UserId]*Subscription
	bufSize int
}

func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &Hub{
		subs:    make(map[domain.ResourceKey]map[domain.UserId]*Subscription),
		bufSize: bufSize,
	}
}

// Subscription is the owned handle for one (viewer, resource key) channel.
// Close is idempotent; the events channel is closed exactly once, either by
// Close or by the hub dropping a slow consumer.
type Subscription struct {
	key    domain.ResourceKey
	viewer domain.UserId

	hub       *Hub
	events    chan domain.Event
	closeOnce sync.Once
}

func (s *Subscription) Key() domain.ResourceKey { return s.key }

func (s *Subscription) Viewer() domain.UserId { return s.viewer }

// Events yields pushed events until the subscription is closed. A receiver
// must treat channel close as teardown and discard any state it was about to
// apply.
func (s *Subscription) Events() <-chan domain.Event { return s.events }

func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.dropLocked(s)
}

// Subscribe registers the viewer on the resource key. Subscribing twice on
// the same key replaces the previous handle instead of stacking a second one:
// the old subscription is closed and the new one becomes the single slot.
func (h *Hub) Subscribe(viewer domain.UserId, key domain.ResourceKey) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.subs[key][viewer]; ok {
		h.dropLocked(prev)
	}

	sub := &Subscription{
		key:    key,
		viewer: viewer,
		hub:    h,
		events: make(chan domain.Event, h.bufSize),
	}
	if h.subs[key] == nil {
		h.subs[key] = make(map[domain.UserId]*Subscription)
	}
	h.subs[key][viewer] = sub
	activeSubscriptions.Inc()
	return sub
}

// Publish delivers the event to every subscriber of the key in commit order.
// A subscriber whose buffer is full is dropped rather than allowed to block
// everyone else; the closed channel tells it to resubscribe and reload.
func (h *Hub) Publish(key domain.ResourceKey, ev domain.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventsPublished.WithLabelValues(ev.Entity, string(ev.Op)).Inc()
	for _, sub := range h.subs[key] {
		select {
		case sub.events <- ev:
		default:
			logger.Log.Warn("dropping slow subscriber", "key", string(key), "viewer", sub.viewer)
			slowSubscribersDropped.Inc()
			h.dropLocked(sub)
		}
	}
}

// Subscribers reports how many viewers are live on the key.
func (h *Hub) Subscribers(key domain.ResourceKey) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}

// dropLocked detaches the subscription if it still owns its slot and closes
// the events channel exactly once. Callers hold h.mu.
func (h *Hub) dropLocked(s *Subscription) {
	if viewers, ok := h.subs[s.key]; ok && viewers[s.viewer] == s {
		delete(viewers, s.viewer)
		if len(viewers) == 0 {
			delete(h.subs, s.key)
		}
		activeSubscriptions.Dec()
	}
	s.closeOnce.Do(func() { close(s.events) })
}
