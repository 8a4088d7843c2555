package domain

import "time"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
)

// RelationState is the viewer-relative reading of a Connection row. The same
// pending row is PendingSent for the requester and PendingReceived for the
// recipient. There is no stored "rejected" state: rejection deletes the row
// and the pair becomes re-requestable.
type RelationState string

const (
	RelationNone            RelationState = "none"
	RelationPendingSent     RelationState = "pending_sent"
	RelationPendingReceived RelationState = "pending_received"
	RelationAccepted        RelationState = "accepted"
)

// Connection is the single social edge between two accounts. At most one row
// exists per unordered user pair, enforced by the database.
type Connection struct {
	Id          int64
	RequesterId UserId
	RecipientId UserId
	Status      ConnectionStatus
	CreatedAt   time.Time
}

func (c *Connection) StateFor(viewer UserId) RelationState {
	if c == nil {
		return RelationNone
	}
	if c.Status == ConnectionAccepted {
		return RelationAccepted
	}
	if c.RequesterId == viewer {
		return RelationPendingSent
	}
	return RelationPendingReceived
}

// Other returns the opposite side of the edge from the viewer's perspective.
func (c *Connection) Other(viewer UserId) UserId {
	if c.RequesterId == viewer {
		return c.RecipientId
	}
	return c.RequesterId
}
