package service

import (
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/aggregate"
	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
	"github.com/studycircle-dev/studycircle/internal/thread"
)

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
	Edit(id domain.CommentId, editor domain.UserId, body string) error
	Delete(id domain.CommentId, actor *domain.User) error
	// Thread assembles the composed live view: comment forest plus reaction
	// aggregates for the content item and every comment.
	Thread(contentId domain.ContentId, viewer domain.UserId) (*api.ThreadResponse, error)
}

type CommentStorage interface {
	CreateComment(data domain.CommentCreationData) (*domain.Comment, error)
	GetComment(id domain.CommentId) (*domain.Comment, error)
	CommentsForContent(contentId domain.ContentId) ([]domain.Comment, error)
	UpdateCommentBody(id domain.CommentId, body string) (*domain.Comment, error)
	DeleteComment(id domain.CommentId) error
}

type ReactionReader interface {
	ReactionsForTarget(targetId int64, targetKind domain.TargetKind) ([]domain.Reaction, error)
	ReactionsForThread(contentId domain.ContentId) ([]domain.Reaction, error)
}

type Comment struct {
	storage       CommentStorage
	content       ContentStorage
	reactions     ReactionReader
	events        EventPublisher
	notifier      NotificationService
	maxBodyLen    int
	replyDepthCap int
}

func NewComment(storage CommentStorage, content ContentStorage, reactions ReactionReader, events EventPublisher, notifier NotificationService, maxBodyLen, replyDepthCap int) *Comment {
	return &Comment{storage, content, reactions, events, notifier, maxBodyLen, replyDepthCap}
}

func (s *Comment) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	if len(data.Body) == 0 {
		return 0, errors.NewValidation("Body must not be empty")
	}
	if len(data.Body) > s.maxBodyLen {
		return 0, errors.NewValidation(fmt.Sprintf("Body exceeds %d characters", s.maxBodyLen))
	}

	item, err := s.content.GetContent(data.ContentItemId)
	if err != nil {
		return 0, err
	}

	if data.ParentCommentId != nil {
		parent, err := s.storage.GetComment(*data.ParentCommentId)
		if err != nil {
			if errors.IsNotFound(err) {
				return 0, errors.NewValidation("Parent comment does not exist")
			}
			return 0, err
		}
		if parent.ContentItemId != data.ContentItemId {
			return 0, errors.NewValidation("Parent comment belongs to a different item")
		}
	}

	created, err := s.storage.CreateComment(data)
	if err != nil {
		return 0, err
	}

	s.events.Publish(domain.ThreadKey(data.ContentItemId), domain.Event{
		Op: domain.EventInsert, Entity: "comment", Payload: created,
	})

	if item.AuthorId != data.AuthorId {
		link := fmt.Sprintf("/content/%d", item.Id)
		// Notification failure must not fail the committed comment
		_ = s.notifier.Notify(item.AuthorId, domain.NotifNewComment, "New comment on your post", truncate(data.Body, 120), &link)
	}
	return created.Id, nil
}

func (s *Comment) Edit(id domain.CommentId, editor domain.UserId, body string) error {
	if len(body) == 0 {
		return errors.NewValidation("Body must not be empty")
	}

	comment, err := s.storage.GetComment(id)
	if err != nil {
		return err
	}
	if comment.AuthorId != editor {
		return errors.NewForbidden("Only the author can edit")
	}

	updated, err := s.storage.UpdateCommentBody(id, body)
	if err != nil {
		return err
	}
	s.events.Publish(domain.ThreadKey(comment.ContentItemId), domain.Event{
		Op: domain.EventUpdate, Entity: "comment", Payload: updated,
	})
	return nil
}

func (s *Comment) Delete(id domain.CommentId, actor *domain.User) error {
	comment, err := s.storage.GetComment(id)
	if err != nil {
		return err
	}
	if comment.AuthorId != actor.Id && !actor.Admin {
		return errors.NewForbidden("Only the author or an admin can delete")
	}

	if err := s.storage.DeleteComment(id); err != nil {
		return err
	}
	s.events.Publish(domain.ThreadKey(comment.ContentItemId), domain.Event{
		Op: domain.EventDelete, Entity: "comment", Payload: comment,
	})
	return nil
}

func (s *Comment) Thread(contentId domain.ContentId, viewer domain.UserId) (*api.ThreadResponse, error) {
	item, err := s.content.GetContent(contentId)
	if err != nil {
		return nil, err
	}

	comments, err := s.storage.CommentsForContent(contentId)
	if err != nil {
		return nil, err
	}

	reactions, err := s.reactions.ReactionsForThread(contentId)
	if err != nil {
		return nil, err
	}

	var contentReactions []domain.Reaction
	for _, r := range reactions {
		if r.TargetKind == domain.TargetPost && r.TargetId == int64(contentId) {
			contentReactions = append(contentReactions, r)
		}
	}

	return &api.ThreadResponse{
		Content:          api.ContentResponse{ContentItem: *item},
		Comments:         thread.BuildForest(comments, s.replyDepthCap),
		ContentReactions: aggregate.CountReactions(contentReactions, viewer),
		CommentReactions: aggregate.CountReactionsByTarget(reactions, domain.TargetComment, viewer),
	}, nil
}
