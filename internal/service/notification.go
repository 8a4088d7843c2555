package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/logger"
)

var notificationsCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "studycircle_notifications_created_total",
		Help: "Notifications written by the fan-out",
	},
	[]string{"kind"},
)

type NotificationService interface {
	Notify(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error
	List(recipient domain.UserId, limit int) ([]domain.Notification, int, error)
	UnreadCount(recipient domain.UserId) (int, error)
	MarkRead(recipient domain.UserId, id string) error
	MarkAllRead(recipient domain.UserId) error
	Delete(recipient domain.UserId, id string) error
}

type NotificationStorage interface {
	CreateNotification(n domain.Notification) (domain.Notification, error)
	Notifications(recipient domain.UserId, limit int) ([]domain.Notification, error)
	UnreadNotificationCount(recipient domain.UserId) (int, error)
	// MarkNotificationRead reports whether the row was unread before the flip.
	MarkNotificationRead(recipient domain.UserId, id string) (bool, error)
	MarkAllNotificationsRead(recipient domain.UserId) error
	// DeleteNotification reports whether the deleted row was unread.
	DeleteNotification(recipient domain.UserId, id string) (bool, error)
}

// EventPublisher is the hub boundary the services publish committed
// mutations through.
type EventPublisher interface {
	Publish(key domain.ResourceKey, ev domain.Event)
}

// Notification implements the fan-out: one row per affected recipient per
// domain event, pushed onto the recipient's feed channel, plus an unread
// counter maintained incrementally and floored at zero.
type Notification struct {
	storage NotificationStorage
	events  EventPublisher
	ids     IdGenerator

	mu     sync.Mutex
	unread map[domain.UserId]int // incremental cache, seeded from storage on first read
}

// IdGenerator produces row ids; split out so tests can pin them.
type IdGenerator func() string

func NewNotification(storage NotificationStorage, events EventPublisher, ids IdGenerator) *Notification {
	return &Notification{
		storage: storage,
		events:  events,
		ids:     ids,
		unread:  make(map[domain.UserId]int),
	}
}

func (s *Notification) Notify(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error {
	created, err := s.storage.CreateNotification(domain.Notification{
		Id:          s.ids(),
		RecipientId: recipient,
		Kind:        kind,
		Title:       title,
		Body:        body,
		Link:        link,
	})
	if err != nil {
		return err
	}

	notificationsCreated.WithLabelValues(string(kind)).Inc()
	unread := s.bump(recipient, +1)
	s.events.Publish(domain.NotificationsKey(recipient), domain.Event{
		Op:      domain.EventInsert,
		Entity:  "notification",
		Payload: notificationEvent{Notification: &created, Unread: unread},
	})
	return nil
}

// notificationEvent is the feed payload: the affected row plus the unread
// counter after the mutation, so subscribers never have to re-query to keep
// their badge consistent.
type notificationEvent struct {
	Notification *domain.Notification `json:"notification,omitempty"`
	Id           string               `json:"id,omitempty"`
	Unread       int                  `json:"unread"`
}

func (s *Notification) List(recipient domain.UserId, limit int) ([]domain.Notification, int, error) {
	notifications, err := s.storage.Notifications(recipient, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.UnreadCount(recipient)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *Notification) UnreadCount(recipient domain.UserId) (int, error) {
	s.mu.Lock()
	if n, ok := s.unread[recipient]; ok {
		s.mu.Unlock()
		return n, nil
	}
	s.mu.Unlock()

	n, err := s.storage.UnreadNotificationCount(recipient)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another caller may have seeded or bumped the cache meanwhile; the
	// storage count is fresher only if nothing is cached yet.
	if cached, ok := s.unread[recipient]; ok {
		return cached, nil
	}
	s.unread[recipient] = n
	return n, nil
}

func (s *Notification) MarkRead(recipient domain.UserId, id string) error {
	wasUnread, err := s.storage.MarkNotificationRead(recipient, id)
	if err != nil {
		return err
	}

	unread := s.currentUnread(recipient)
	if wasUnread {
		unread = s.bump(recipient, -1)
	}
	s.events.Publish(domain.NotificationsKey(recipient), domain.Event{
		Op:      domain.EventUpdate,
		Entity:  "notification",
		Payload: notificationEvent{Id: id, Unread: unread},
	})
	return nil
}

func (s *Notification) MarkAllRead(recipient domain.UserId) error {
	if err := s.storage.MarkAllNotificationsRead(recipient); err != nil {
		return err
	}

	s.mu.Lock()
	s.unread[recipient] = 0
	s.mu.Unlock()

	s.events.Publish(domain.NotificationsKey(recipient), domain.Event{
		Op:      domain.EventUpdate,
		Entity:  "notification",
		Payload: notificationEvent{Unread: 0},
	})
	return nil
}

func (s *Notification) Delete(recipient domain.UserId, id string) error {
	wasUnread, err := s.storage.DeleteNotification(recipient, id)
	if err != nil {
		return err
	}

	unread := s.currentUnread(recipient)
	if wasUnread {
		unread = s.bump(recipient, -1)
	}
	s.events.Publish(domain.NotificationsKey(recipient), domain.Event{
		Op:      domain.EventDelete,
		Entity:  "notification",
		Payload: notificationEvent{Id: id, Unread: unread},
	})
	return nil
}

// bump adjusts the incremental counter, floored at zero: interleavings of
// push-inserts and mark-reads must never drive it negative.
func (s *Notification) bump(recipient domain.UserId, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.unread[recipient] + delta
	if n < 0 {
		logger.Log.Warn("unread counter underflow", "recipient", recipient)
		n = 0
	}
	s.unread[recipient] = n
	return n
}

func (s *Notification) currentUnread(recipient domain.UserId) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread[recipient]
}
