package domain

import "time"

type NotificationKind string

const (
	NotifConnectionRequest  NotificationKind = "connection_request"
	NotifConnectionAccepted NotificationKind = "connection_accepted"
	NotifNewComment         NotificationKind = "new_comment"
	NotifNewReaction        NotificationKind = "new_reaction"
	NotifNewDirectMessage   NotificationKind = "new_direct_message"
)

// Notification is write-once except for the read flag; deleted only by its
// recipient.
type Notification struct {
	Id          string // uuid
	RecipientId UserId
	Kind        NotificationKind
	Title       string
	Body        string
	Link        *string
	Read        bool
	CreatedAt   time.Time
}
