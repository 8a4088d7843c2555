package service

import (
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
)

type ConnectionService interface {
	// Request creates the pending edge (None -> PendingSent for the viewer).
	Request(requester, recipient domain.UserId) error
	// Accept moves PendingReceived -> Accepted and notifies the requester.
	Accept(viewer, other domain.UserId) error
	// Remove deletes the row from any state: reject, cancel and unfriend are
	// all the same deletion, which makes the pair re-requestable.
	Remove(viewer, other domain.UserId) error
	State(viewer, other domain.UserId) (domain.RelationState, error)
	List(viewer domain.UserId) ([]api.ConnectionView, error)
}

type ConnectionStorage interface {
	CreateConnection(requester, recipient domain.UserId) (*domain.Connection, error)
	// ConnectionBetween looks the pair up in either orientation.
	ConnectionBetween(a, b domain.UserId) (*domain.Connection, error)
	AcceptConnection(id int64) error
	DeleteConnection(id int64) error
	ConnectionsFor(user domain.UserId) ([]domain.Connection, error)
}

type Connection struct {
	storage  ConnectionStorage
	notifier NotificationService
}

func NewConnection(storage ConnectionStorage, notifier NotificationService) *Connection {
	return &Connection{storage, notifier}
}

func (s *Connection) Request(requester, recipient domain.UserId) error {
	if requester == recipient {
		return errors.NewValidation("Can't connect with yourself")
	}

	// The unique pair index is the authority; checking first just gives a
	// friendlier error than the raw conflict.
	existing, err := s.storage.ConnectionBetween(requester, recipient)
	if err != nil && !errors.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return errors.NewConflict("A connection for this pair already exists")
	}

	if _, err := s.storage.CreateConnection(requester, recipient); err != nil {
		if errors.IsConflict(err) {
			// Lost the race to a concurrent request for the same pair; the
			// edge exists either way.
			return errors.NewConflict("A connection for this pair already exists")
		}
		return err
	}

	link := fmt.Sprintf("/profile/%d", requester)
	_ = s.notifier.Notify(recipient, domain.NotifConnectionRequest, "New connection request", "", &link)
	return nil
}

func (s *Connection) Accept(viewer, other domain.UserId) error {
	conn, err := s.storage.ConnectionBetween(viewer, other)
	if err != nil {
		return err
	}
	if conn.StateFor(viewer) != domain.RelationPendingReceived {
		return errors.NewValidation("No incoming request to accept")
	}

	if err := s.storage.AcceptConnection(conn.Id); err != nil {
		return err
	}

	link := fmt.Sprintf("/profile/%d", viewer)
	_ = s.notifier.Notify(conn.RequesterId, domain.NotifConnectionAccepted, "Connection accepted", "", &link)
	return nil
}

func (s *Connection) Remove(viewer, other domain.UserId) error {
	conn, err := s.storage.ConnectionBetween(viewer, other)
	if err != nil {
		return err
	}
	// Reject, cancel and unfriend: deletion, no notification
	return s.storage.DeleteConnection(conn.Id)
}

func (s *Connection) State(viewer, other domain.UserId) (domain.RelationState, error) {
	conn, err := s.storage.ConnectionBetween(viewer, other)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.RelationNone, nil
		}
		return domain.RelationNone, err
	}
	return conn.StateFor(viewer), nil
}

func (s *Connection) List(viewer domain.UserId) ([]api.ConnectionView, error) {
	conns, err := s.storage.ConnectionsFor(viewer)
	if err != nil {
		return nil, err
	}

	views := make([]api.ConnectionView, len(conns))
	for i := range conns {
		views[i] = api.ConnectionView{
			Connection: conns[i],
			State:      conns[i].StateFor(viewer),
			OtherId:    conns[i].Other(viewer),
		}
	}
	return views, nil
}
