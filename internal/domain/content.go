package domain

import "time"

type Scope string

const (
	ScopeGroup   Scope = "group"
	ScopeDirect  Scope = "direct"
	ScopeSession Scope = "session"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeGroup, ScopeDirect, ScopeSession:
		return true
	}
	return false
}

type ContentKind string

const (
	ContentPost       ContentKind = "post"
	ContentDiscussion ContentKind = "discussion"
	ContentMessage    ContentKind = "message"
)

func (k ContentKind) Valid() bool {
	switch k {
	case ContentPost, ContentDiscussion, ContentMessage:
		return true
	}
	return false
}

// ContentItem is a post, discussion or chat message. Identity is immutable;
// body/edited are mutable by the author, pinned by a scope admin.
type ContentItem struct {
	Id        ContentId
	AuthorId  UserId
	Scope     Scope
	ScopeId   string // group id, session id or ordered "a:b" pair for direct messages
	Kind      ContentKind
	Body      string
	Pinned    bool
	CreatedAt time.Time
	EditedAt  *time.Time
}

// to iterate thru layers: handler -> service -> storage
type ContentCreationData struct {
	AuthorId UserId
	Scope    Scope
	ScopeId  string
	Kind     ContentKind
	Body     string
}
