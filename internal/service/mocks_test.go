package service

// Shared test doubles for the service layer.

import (
	"fmt"
	"sync"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []struct {
		Key domain.ResourceKey
		Ev  domain.Event
	}
}

func (m *MockPublisher) Publish(key domain.ResourceKey, ev domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, struct {
		Key domain.ResourceKey
		Ev  domain.Event
	}{key, ev})
}

func (m *MockPublisher) Last() (domain.ResourceKey, domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Events) == 0 {
		return "", domain.Event{}
	}
	last := m.Events[len(m.Events)-1]
	return last.Key, last.Ev
}

// MockNotifier records fan-out calls without touching storage.
type MockNotifier struct {
	NotifyFunc func(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error

	mu    sync.Mutex
	Calls []struct {
		Recipient domain.UserId
		Kind      domain.NotificationKind
	}
}

func (m *MockNotifier) Notify(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, struct {
		Recipient domain.UserId
		Kind      domain.NotificationKind
	}{recipient, kind})
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		return m.NotifyFunc(recipient, kind, title, body, link)
	}
	return nil
}

func (m *MockNotifier) List(recipient domain.UserId, limit int) ([]domain.Notification, int, error) {
	return nil, 0, nil
}

func (m *MockNotifier) UnreadCount(recipient domain.UserId) (int, error) { return 0, nil }

func (m *MockNotifier) MarkRead(recipient domain.UserId, id string) error { return nil }

func (m *MockNotifier) MarkAllRead(recipient domain.UserId) error { return nil }

func (m *MockNotifier) Delete(recipient domain.UserId, id string) error { return nil }

func testIds() IdGenerator {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
