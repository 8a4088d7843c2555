package handler

import (
	"github.com/studycircle-dev/studycircle/internal/aggregate"
	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
)

// Service mocks shared by the handler tests. Each field overrides one method;
// unset fields fall back to a harmless default.

type MockAuthService struct {
	MockRegister func(creds domain.Credentials, displayName string) error
	MockLogin    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(creds domain.Credentials, displayName string) error {
	if m.MockRegister != nil {
		return m.MockRegister(creds, displayName)
	}
	return nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "", nil
}

type MockContentService struct {
	MockCreate       func(data domain.ContentCreationData) (domain.ContentId, error)
	MockCreateDirect func(author, recipient domain.UserId, body string) (domain.ContentId, error)
	MockGet          func(id domain.ContentId) (*domain.ContentItem, error)
	MockList         func(scope domain.Scope, scopeId string) ([]domain.ContentItem, error)
	MockEdit         func(id domain.ContentId, editor domain.UserId, body string) error
	MockDelete       func(id domain.ContentId, actor *domain.User) error
	MockSetPinned    func(id domain.ContentId, actor *domain.User, pinned bool) error
}

func (m *MockContentService) Create(data domain.ContentCreationData) (domain.ContentId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockContentService) CreateDirect(author, recipient domain.UserId, body string) (domain.ContentId, error) {
	if m.MockCreateDirect != nil {
		return m.MockCreateDirect(author, recipient, body)
	}
	return 1, nil
}

func (m *MockContentService) Get(id domain.ContentId) (*domain.ContentItem, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.ContentItem{Id: id}, nil
}

func (m *MockContentService) List(scope domain.Scope, scopeId string) ([]domain.ContentItem, error) {
	if m.MockList != nil {
		return m.MockList(scope, scopeId)
	}
	return nil, nil
}

func (m *MockContentService) Edit(id domain.ContentId, editor domain.UserId, body string) error {
	if m.MockEdit != nil {
		return m.MockEdit(id, editor, body)
	}
	return nil
}

func (m *MockContentService) Delete(id domain.ContentId, actor *domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, actor)
	}
	return nil
}

func (m *MockContentService) SetPinned(id domain.ContentId, actor *domain.User, pinned bool) error {
	if m.MockSetPinned != nil {
		return m.MockSetPinned(id, actor, pinned)
	}
	return nil
}

type MockCommentService struct {
	MockCreate func(data domain.CommentCreationData) (domain.CommentId, error)
	MockEdit   func(id domain.CommentId, editor domain.UserId, body string) error
	MockDelete func(id domain.CommentId, actor *domain.User) error
	MockThread func(contentId domain.ContentId, viewer domain.UserId) (*api.ThreadResponse, error)
}

func (m *MockCommentService) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockCommentService) Edit(id domain.CommentId, editor domain.UserId, body string) error {
	if m.MockEdit != nil {
		return m.MockEdit(id, editor, body)
	}
	return nil
}

func (m *MockCommentService) Delete(id domain.CommentId, actor *domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, actor)
	}
	return nil
}

func (m *MockCommentService) Thread(contentId domain.ContentId, viewer domain.UserId) (*api.ThreadResponse, error) {
	if m.MockThread != nil {
		return m.MockThread(contentId, viewer)
	}
	return &api.ThreadResponse{}, nil
}

type MockReactionService struct {
	MockToggle func(actor domain.UserId, targetId int64, targetKind domain.TargetKind, kind domain.ReactionKind) (bool, error)
	MockCounts func(targetId int64, targetKind domain.TargetKind, viewer domain.UserId) (aggregate.ReactionCounts, error)
}

func (m *MockReactionService) Toggle(actor domain.UserId, targetId int64, targetKind domain.TargetKind, kind domain.ReactionKind) (bool, error) {
	if m.MockToggle != nil {
		return m.MockToggle(actor, targetId, targetKind, kind)
	}
	return true, nil
}

func (m *MockReactionService) Counts(targetId int64, targetKind domain.TargetKind, viewer domain.UserId) (aggregate.ReactionCounts, error) {
	if m.MockCounts != nil {
		return m.MockCounts(targetId, targetKind, viewer)
	}
	return aggregate.ReactionCounts{}, nil
}

type MockPollService struct {
	MockCreate         func(creator *domain.User, data domain.PollCreationData) (*domain.Poll, error)
	MockClose          func(pollId string, actor *domain.User) error
	MockGet            func(pollId string, viewer domain.UserId) (*domain.Poll, aggregate.PollTally, error)
	MockListForSession func(sessionId domain.SessionId, viewer domain.UserId) ([]domain.Poll, []aggregate.PollTally, error)
	MockVote           func(pollId string, actor domain.UserId, optionId string) error
}

func (m *MockPollService) Create(creator *domain.User, data domain.PollCreationData) (*domain.Poll, error) {
	if m.MockCreate != nil {
		return m.MockCreate(creator, data)
	}
	return &domain.Poll{}, nil
}

func (m *MockPollService) Close(pollId string, actor *domain.User) error {
	if m.MockClose != nil {
		return m.MockClose(pollId, actor)
	}
	return nil
}

func (m *MockPollService) Get(pollId string, viewer domain.UserId) (*domain.Poll, aggregate.PollTally, error) {
	if m.MockGet != nil {
		return m.MockGet(pollId, viewer)
	}
	return &domain.Poll{Id: pollId}, aggregate.PollTally{}, nil
}

func (m *MockPollService) ListForSession(sessionId domain.SessionId, viewer domain.UserId) ([]domain.Poll, []aggregate.PollTally, error) {
	if m.MockListForSession != nil {
		return m.MockListForSession(sessionId, viewer)
	}
	return nil, nil, nil
}

func (m *MockPollService) Vote(pollId string, actor domain.UserId, optionId string) error {
	if m.MockVote != nil {
		return m.MockVote(pollId, actor, optionId)
	}
	return nil
}

type MockConnectionService struct {
	MockRequest func(requester, recipient domain.UserId) error
	MockAccept  func(viewer, other domain.UserId) error
	MockRemove  func(viewer, other domain.UserId) error
	MockState   func(viewer, other domain.UserId) (domain.RelationState, error)
	MockList    func(viewer domain.UserId) ([]api.ConnectionView, error)
}

func (m *MockConnectionService) Request(requester, recipient domain.UserId) error {
	if m.MockRequest != nil {
		return m.MockRequest(requester, recipient)
	}
	return nil
}

func (m *MockConnectionService) Accept(viewer, other domain.UserId) error {
	if m.MockAccept != nil {
		return m.MockAccept(viewer, other)
	}
	return nil
}

func (m *MockConnectionService) Remove(viewer, other domain.UserId) error {
	if m.MockRemove != nil {
		return m.MockRemove(viewer, other)
	}
	return nil
}

func (m *MockConnectionService) State(viewer, other domain.UserId) (domain.RelationState, error) {
	if m.MockState != nil {
		return m.MockState(viewer, other)
	}
	return domain.RelationNone, nil
}

func (m *MockConnectionService) List(viewer domain.UserId) ([]api.ConnectionView, error) {
	if m.MockList != nil {
		return m.MockList(viewer)
	}
	return nil, nil
}

type MockNotificationService struct {
	MockNotify      func(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error
	MockList        func(recipient domain.UserId, limit int) ([]domain.Notification, int, error)
	MockUnreadCount func(recipient domain.UserId) (int, error)
	MockMarkRead    func(recipient domain.UserId, id string) error
	MockMarkAllRead func(recipient domain.UserId) error
	MockDelete      func(recipient domain.UserId, id string) error
}

func (m *MockNotificationService) Notify(recipient domain.UserId, kind domain.NotificationKind, title, body string, link *string) error {
	if m.MockNotify != nil {
		return m.MockNotify(recipient, kind, title, body, link)
	}
	return nil
}

func (m *MockNotificationService) List(recipient domain.UserId, limit int) ([]domain.Notification, int, error) {
	if m.MockList != nil {
		return m.MockList(recipient, limit)
	}
	return nil, 0, nil
}

func (m *MockNotificationService) UnreadCount(recipient domain.UserId) (int, error) {
	if m.MockUnreadCount != nil {
		return m.MockUnreadCount(recipient)
	}
	return 0, nil
}

func (m *MockNotificationService) MarkRead(recipient domain.UserId, id string) error {
	if m.MockMarkRead != nil {
		return m.MockMarkRead(recipient, id)
	}
	return nil
}

func (m *MockNotificationService) MarkAllRead(recipient domain.UserId) error {
	if m.MockMarkAllRead != nil {
		return m.MockMarkAllRead(recipient)
	}
	return nil
}

func (m *MockNotificationService) Delete(recipient domain.UserId, id string) error {
	if m.MockDelete != nil {
		return m.MockDelete(recipient, id)
	}
	return nil
}
