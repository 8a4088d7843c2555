package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ResourceKey scopes one live channel: a post thread, a group chat, a session
// lobby, a direct-message pair or a user's notification feed.
type ResourceKey string

func ThreadKey(id ContentId) ResourceKey {
	return ResourceKey(fmt.Sprintf("thread:%d", id))
}

func GroupKey(id GroupId) ResourceKey {
	return ResourceKey("group:" + id)
}

func SessionKey(id SessionId) ResourceKey {
	return ResourceKey("session:" + id)
}

// DMKey orders the pair so both participants land on the same channel.
func DMKey(a, b UserId) ResourceKey {
	if b < a {
		a, b = b, a
	}
	return ResourceKey(fmt.Sprintf("dm:%d:%d", a, b))
}

// DMScopeId is the ScopeId stored on direct-message content items.
func DMScopeId(a, b UserId) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// ParseDMScopeId splits an ordered "a:b" pair back into the two user ids.
func ParseDMScopeId(scopeId string) (UserId, UserId, error) {
	parts := strings.SplitN(scopeId, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed dm scope id %q", scopeId)
	}
	a, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed dm scope id %q", scopeId)
	}
	b, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed dm scope id %q", scopeId)
	}
	return a, b, nil
}

// KeyForScope maps a content item's scope to the live channel it belongs to.
func KeyForScope(scope Scope, scopeId string) ResourceKey {
	switch scope {
	case ScopeGroup:
		return GroupKey(scopeId)
	case ScopeSession:
		return SessionKey(scopeId)
	case ScopeDirect:
		return ResourceKey("dm:" + scopeId)
	}
	return ResourceKey(string(scope) + ":" + scopeId)
}

func NotificationsKey(recipient UserId) ResourceKey {
	return ResourceKey(fmt.Sprintf("notif:%d", recipient))
}

type EventOp string

const (
	EventInsert EventOp = "insert"
	EventUpdate EventOp = "update"
	EventDelete EventOp = "delete"
)

// Event is one committed mutation replayed to subscribers of a resource key.
// Entity names the relation ("comment", "reaction", ...), Payload carries the
// affected row. Events for one key are published in commit order; handlers
// that reload instead of patching make apparent ordering eventually
// consistent, which is accepted.
type Event struct {
	Op      EventOp `json:"op"`
	Entity  string  `json:"entity"`
	Payload any     `json:"payload,omitempty"`
}
