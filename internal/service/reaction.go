package service

import (
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/aggregate"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
)

type ReactionService interface {
	// Toggle flips the (actor, target, kind) reaction: delete if present,
	// insert if absent. Returns whether the reaction is active afterwards.
	Toggle(actor domain.UserId, targetId int64, targetKind domain.TargetKind, kind domain.ReactionKind) (bool, error)
	Counts(targetId int64, targetKind domain.TargetKind, viewer domain.UserId) (aggregate.ReactionCounts, error)
}

type ReactionStorage interface {
	ReactionsForTarget(targetId int64, targetKind domain.TargetKind) ([]domain.Reaction, error)
	FindReaction(targetId int64, targetKind domain.TargetKind, actor domain.UserId, kind domain.ReactionKind) (*domain.Reaction, error)
	CreateReaction(r domain.Reaction) error
	DeleteReaction(id string) error
	// ReactionTargetInfo resolves the target's author and owning content item
	// (a post is its own owner; a comment belongs to its item's thread).
	ReactionTargetInfo(targetId int64, targetKind domain.TargetKind) (author domain.UserId, contentId domain.ContentId, err error)
}

type Reaction struct {
	storage  ReactionStorage
	events   EventPublisher
	notifier NotificationService
	ids      IdGenerator
}

func NewReaction(storage ReactionStorage, events EventPublisher, notifier NotificationService, ids IdGenerator) *Reaction {
	return &Reaction{storage, events, notifier, ids}
}

func (s *Reaction) Toggle(actor domain.UserId, targetId int64, targetKind domain.TargetKind, kind domain.ReactionKind) (bool, error) {
	if !targetKind.Valid() {
		return false, errors.NewValidation("Unknown target kind")
	}
	if !kind.Valid() {
		return false, errors.NewValidation("Unknown reaction kind")
	}

	author, contentId, err := s.storage.ReactionTargetInfo(targetId, targetKind)
	if err != nil {
		return false, err
	}

	existing, err := s.storage.FindReaction(targetId, targetKind, actor, kind)
	if err != nil && !errors.IsNotFound(err) {
		return false, err
	}

	if existing != nil {
		// Toggle off. The row may already be gone if another tab of the same
		// actor raced us there; a vanished row is still a successful un-react.
		if err := s.storage.DeleteReaction(existing.Id); err != nil && !errors.IsNotFound(err) {
			return false, err
		}
		s.events.Publish(domain.ThreadKey(contentId), domain.Event{
			Op: domain.EventDelete, Entity: "reaction", Payload: existing,
		})
		return false, nil
	}

	// Toggle on
	reaction := domain.Reaction{
		Id:         s.ids(),
		TargetId:   targetId,
		TargetKind: targetKind,
		ActorId:    actor,
		Kind:       kind,
	}
	if err := s.storage.CreateReaction(reaction); err != nil {
		if errors.IsConflict(err) {
			// Another tab inserted the same row first. The state the actor
			// asked for exists, so the toggle-on succeeded.
			return true, nil
		}
		return false, err
	}

	s.events.Publish(domain.ThreadKey(contentId), domain.Event{
		Op: domain.EventInsert, Entity: "reaction", Payload: &reaction,
	})

	if author != actor {
		link := fmt.Sprintf("/content/%d", contentId)
		_ = s.notifier.Notify(author, domain.NotifNewReaction, "Someone reacted to your post", string(kind), &link)
	}
	return true, nil
}

func (s *Reaction) Counts(targetId int64, targetKind domain.TargetKind, viewer domain.UserId) (aggregate.ReactionCounts, error) {
	if !targetKind.Valid() {
		return aggregate.ReactionCounts{}, errors.NewValidation("Unknown target kind")
	}
	rows, err := s.storage.ReactionsForTarget(targetId, targetKind)
	if err != nil {
		return aggregate.ReactionCounts{}, err
	}
	return aggregate.CountReactions(rows, viewer), nil
}
