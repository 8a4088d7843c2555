package service

import (
	"fmt"
	"strings"

	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
)

type ContentService interface {
	Create(data domain.ContentCreationData) (domain.ContentId, error)
	CreateDirect(author domain.UserId, recipient domain.UserId, body string) (domain.ContentId, error)
	Get(id domain.ContentId) (*domain.ContentItem, error)
	List(scope domain.Scope, scopeId string) ([]domain.ContentItem, error)
	Edit(id domain.ContentId, editor domain.UserId, body string) error
	Delete(id domain.ContentId, actor *domain.User) error
	SetPinned(id domain.ContentId, actor *domain.User, pinned bool) error
}

type ContentStorage interface {
	CreateContent(data domain.ContentCreationData) (*domain.ContentItem, error)
	GetContent(id domain.ContentId) (*domain.ContentItem, error)
	ListContent(scope domain.Scope, scopeId string) ([]domain.ContentItem, error)
	UpdateContentBody(id domain.ContentId, body string) (*domain.ContentItem, error)
	DeleteContent(id domain.ContentId) error
	SetContentPinned(id domain.ContentId, pinned bool) (*domain.ContentItem, error)
}

type Content struct {
	storage    ContentStorage
	events     EventPublisher
	notifier   NotificationService
	maxBodyLen int
}

func NewContent(storage ContentStorage, events EventPublisher, notifier NotificationService, maxBodyLen int) *Content {
	return &Content{storage, events, notifier, maxBodyLen}
}

func (s *Content) validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.NewValidation("Body must not be empty")
	}
	if len(body) > s.maxBodyLen {
		return errors.NewValidation(fmt.Sprintf("Body exceeds %d characters", s.maxBodyLen))
	}
	return nil
}

func (s *Content) Create(data domain.ContentCreationData) (domain.ContentId, error) {
	if err := s.validateBody(data.Body); err != nil {
		return 0, err
	}
	if !data.Scope.Valid() {
		return 0, errors.NewValidation("Unknown scope")
	}
	if !data.Kind.Valid() {
		return 0, errors.NewValidation("Unknown content kind")
	}

	item, err := s.storage.CreateContent(data)
	if err != nil {
		return 0, err
	}

	s.events.Publish(domain.KeyForScope(item.Scope, item.ScopeId), domain.Event{
		Op: domain.EventInsert, Entity: "content", Payload: item,
	})
	return item.Id, nil
}

// CreateDirect posts a message into the ordered pair channel and notifies
// the other side.
func (s *Content) CreateDirect(author, recipient domain.UserId, body string) (domain.ContentId, error) {
	if author == recipient {
		return 0, errors.NewValidation("Can't message yourself")
	}

	id, err := s.Create(domain.ContentCreationData{
		AuthorId: author,
		Scope:    domain.ScopeDirect,
		ScopeId:  domain.DMScopeId(author, recipient),
		Kind:     domain.ContentMessage,
		Body:     body,
	})
	if err != nil {
		return 0, err
	}

	link := fmt.Sprintf("/messages/%s", domain.DMScopeId(author, recipient))
	if err := s.notifier.Notify(recipient, domain.NotifNewDirectMessage, "New message", truncate(body, 120), &link); err != nil {
		// The message is committed; a failed notification must not fail it
		return id, nil
	}
	return id, nil
}

func (s *Content) Get(id domain.ContentId) (*domain.ContentItem, error) {
	return s.storage.GetContent(id)
}

func (s *Content) List(scope domain.Scope, scopeId string) ([]domain.ContentItem, error) {
	if !scope.Valid() {
		return nil, errors.NewValidation("Unknown scope")
	}
	return s.storage.ListContent(scope, scopeId)
}

func (s *Content) Edit(id domain.ContentId, editor domain.UserId, body string) error {
	if err := s.validateBody(body); err != nil {
		return err
	}

	item, err := s.storage.GetContent(id)
	if err != nil {
		return err
	}
	if item.AuthorId != editor {
		return errors.NewForbidden("Only the author can edit")
	}

	updated, err := s.storage.UpdateContentBody(id, body)
	if err != nil {
		return err
	}
	s.events.Publish(domain.KeyForScope(updated.Scope, updated.ScopeId), domain.Event{
		Op: domain.EventUpdate, Entity: "content", Payload: updated,
	})
	return nil
}

func (s *Content) Delete(id domain.ContentId, actor *domain.User) error {
	item, err := s.storage.GetContent(id)
	if err != nil {
		return err
	}
	if item.AuthorId != actor.Id && !actor.Admin {
		return errors.NewForbidden("Only the author or an admin can delete")
	}

	if err := s.storage.DeleteContent(id); err != nil {
		return err
	}
	s.events.Publish(domain.KeyForScope(item.Scope, item.ScopeId), domain.Event{
		Op: domain.EventDelete, Entity: "content", Payload: item,
	})
	return nil
}

func (s *Content) SetPinned(id domain.ContentId, actor *domain.User, pinned bool) error {
	if !actor.Admin {
		return errors.NewForbidden("Only a scope admin can pin")
	}

	updated, err := s.storage.SetContentPinned(id, pinned)
	if err != nil {
		return err
	}
	s.events.Publish(domain.KeyForScope(updated.Scope, updated.ScopeId), domain.Event{
		Op: domain.EventUpdate, Entity: "content", Payload: updated,
	})
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
