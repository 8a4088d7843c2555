package api

import (
	"github.com/studycircle-dev/studycircle/internal/aggregate"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/thread"
)

// Request DTOs

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateContentRequest struct {
	Scope   string `json:"scope" validate:"required"`
	ScopeId string `json:"scope_id"`
	Kind    string `json:"kind" validate:"required"`
	Body    string `json:"body" validate:"required"`
	// Recipient is set instead of ScopeId for direct messages
	Recipient *domain.UserId `json:"recipient,omitempty"`
}

type EditContentRequest struct {
	Body string `json:"body" validate:"required"`
}

type PinContentRequest struct {
	Pinned bool `json:"pinned"`
}

type CreateCommentRequest struct {
	Body            string            `json:"body" validate:"required"`
	ParentCommentId *domain.CommentId `json:"parent_comment_id,omitempty"`
}

type EditCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

type ToggleReactionRequest struct {
	TargetId   int64  `json:"target_id" validate:"required"`
	TargetKind string `json:"target_kind" validate:"required"`
	Kind       string `json:"kind" validate:"required"`
}

type CreatePollRequest struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	AllowMultiple bool     `json:"allow_multiple"`
}

type VoteRequest struct {
	OptionId string `json:"option_id" validate:"required"`
}

type RequestConnectionRequest struct {
	RecipientId domain.UserId `json:"recipient_id" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	Token string `json:"token"`
}

type ContentResponse struct {
	domain.ContentItem
	// BodyHTML is the sanitized rendering of Body; empty unless requested
	BodyHTML string `json:"body_html,omitempty"`
}

type ContentListResponse struct {
	Items []ContentResponse `json:"items"`
}

type CreateContentResponse struct {
	Id domain.ContentId `json:"id"`
}

type CreateCommentResponse struct {
	Id domain.CommentId `json:"id"`
}

// ThreadResponse is the composed live view of one content item: the comment
// forest plus aggregated reactions for the item and each comment.
type ThreadResponse struct {
	Content          ContentResponse                    `json:"content"`
	Comments         *thread.Forest                     `json:"comments"`
	ContentReactions aggregate.ReactionCounts           `json:"content_reactions"`
	CommentReactions map[int64]aggregate.ReactionCounts `json:"comment_reactions"`
}

type ToggleReactionResponse struct {
	// Active reports whether the reaction exists after the toggle
	Active bool                     `json:"active"`
	Counts aggregate.ReactionCounts `json:"counts"`
}

type PollResponse struct {
	Poll  domain.Poll         `json:"poll"`
	Tally aggregate.PollTally `json:"tally"`
}

type PollListResponse struct {
	Polls []PollResponse `json:"polls"`
}

type ConnectionView struct {
	Connection domain.Connection    `json:"connection"`
	State      domain.RelationState `json:"state"`
	OtherId    domain.UserId        `json:"other_id"`
}

type ConnectionListResponse struct {
	Connections []ConnectionView `json:"connections"`
}

type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
