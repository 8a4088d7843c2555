package service

import (
	"strings"

	"github.com/studycircle-dev/studycircle/internal/aggregate"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
)

type PollService interface {
	Create(creator *domain.User, data domain.PollCreationData) (*domain.Poll, error)
	Close(pollId string, actor *domain.User) error
	Get(pollId string, viewer domain.UserId) (*domain.Poll, aggregate.PollTally, error)
	ListForSession(sessionId domain.SessionId, viewer domain.UserId) ([]domain.Poll, []aggregate.PollTally, error)
	// Vote applies the actor's vote for one option: single-select polls
	// replace the selection, multi-select polls toggle the option. An empty
	// resulting selection deletes the response row.
	Vote(pollId string, actor domain.UserId, optionId string) error
}

type PollStorage interface {
	CreatePoll(poll domain.Poll) error
	GetPoll(pollId string) (*domain.Poll, error)
	PollsForSession(sessionId domain.SessionId) ([]domain.Poll, error)
	SetPollActive(pollId string, active bool) error
	PollResponses(pollId string) ([]domain.PollResponse, error)
	FindPollResponse(pollId string, actor domain.UserId) (*domain.PollResponse, error)
	// UpsertPollResponse replaces the actor's selection wholesale.
	UpsertPollResponse(resp domain.PollResponse) error
	DeletePollResponse(pollId string, actor domain.UserId) error
}

type Poll struct {
	storage PollStorage
	events  EventPublisher
	ids     IdGenerator
}

func NewPoll(storage PollStorage, events EventPublisher, ids IdGenerator) *Poll {
	return &Poll{storage, events, ids}
}

func (s *Poll) Create(creator *domain.User, data domain.PollCreationData) (*domain.Poll, error) {
	if strings.TrimSpace(data.Question) == "" {
		return nil, errors.NewValidation("Question must not be empty")
	}
	if len(data.Options) < 2 {
		return nil, errors.NewValidation("A poll needs at least two options")
	}

	poll := domain.Poll{
		Id:            s.ids(),
		SessionId:     data.SessionId,
		Question:      data.Question,
		AllowMultiple: data.AllowMultiple,
		IsActive:      true,
	}
	for i, text := range data.Options {
		if strings.TrimSpace(text) == "" {
			return nil, errors.NewValidation("Options must not be empty")
		}
		poll.Options = append(poll.Options, domain.PollOption{Id: s.ids(), Text: text, Position: i})
	}

	if err := s.storage.CreatePoll(poll); err != nil {
		return nil, err
	}

	s.events.Publish(domain.SessionKey(poll.SessionId), domain.Event{
		Op: domain.EventInsert, Entity: "poll", Payload: &poll,
	})
	return &poll, nil
}

func (s *Poll) Close(pollId string, actor *domain.User) error {
	poll, err := s.storage.GetPoll(pollId)
	if err != nil {
		return err
	}
	if !actor.Admin {
		return errors.NewForbidden("Only a session admin can close a poll")
	}

	if err := s.storage.SetPollActive(pollId, false); err != nil {
		return err
	}
	poll.IsActive = false
	s.events.Publish(domain.SessionKey(poll.SessionId), domain.Event{
		Op: domain.EventUpdate, Entity: "poll", Payload: poll,
	})
	return nil
}

func (s *Poll) Get(pollId string, viewer domain.UserId) (*domain.Poll, aggregate.PollTally, error) {
	poll, err := s.storage.GetPoll(pollId)
	if err != nil {
		return nil, aggregate.PollTally{}, err
	}
	responses, err := s.storage.PollResponses(pollId)
	if err != nil {
		return nil, aggregate.PollTally{}, err
	}
	return poll, aggregate.TallyPoll(poll, responses, viewer), nil
}

func (s *Poll) ListForSession(sessionId domain.SessionId, viewer domain.UserId) ([]domain.Poll, []aggregate.PollTally, error) {
	polls, err := s.storage.PollsForSession(sessionId)
	if err != nil {
		return nil, nil, err
	}

	tallies := make([]aggregate.PollTally, len(polls))
	for i := range polls {
		responses, err := s.storage.PollResponses(polls[i].Id)
		if err != nil {
			return nil, nil, err
		}
		tallies[i] = aggregate.TallyPoll(&polls[i], responses, viewer)
	}
	return polls, tallies, nil
}

func (s *Poll) Vote(pollId string, actor domain.UserId, optionId string) error {
	poll, err := s.storage.GetPoll(pollId)
	if err != nil {
		return err
	}
	if !poll.IsActive {
		return errors.NewValidation("Poll is closed")
	}
	if !aggregate.HasOption(poll, optionId) {
		return errors.NewValidation("Unknown option")
	}

	var current []string
	existing, err := s.storage.FindPollResponse(pollId, actor)
	if err != nil && !errors.IsNotFound(err) {
		return err
	}
	if existing != nil {
		current = existing.SelectedOptionIds
	}

	next := aggregate.NextSelection(poll, current, optionId)
	if len(next) == 0 {
		// Empty selection means no row at all, never an empty array
		if err := s.storage.DeletePollResponse(pollId, actor); err != nil && !errors.IsNotFound(err) {
			return err
		}
	} else {
		if err := s.storage.UpsertPollResponse(domain.PollResponse{PollId: pollId, ActorId: actor, SelectedOptionIds: next}); err != nil {
			return err
		}
	}

	s.events.Publish(domain.SessionKey(poll.SessionId), domain.Event{
		Op: domain.EventUpdate, Entity: "poll_response", Payload: map[string]any{"poll_id": pollId},
	})
	return nil
}
