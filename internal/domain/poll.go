package domain

import "time"

// Poll is session-scoped and ephemeral: it lives for the duration of a study
// session and is closed (IsActive=false) rather than archived.
type Poll struct {
	Id            string // uuid
	SessionId     SessionId
	Question      string
	Options       []PollOption
	AllowMultiple bool
	IsActive      bool
	CreatedAt     time.Time
}

type PollOption struct {
	Id       string // uuid
	Text     string
	Position int
}

// PollResponse holds one actor's whole selection. It is replaced wholesale on
// every vote change and deleted when the selection becomes empty; an empty
// option list is never stored.
type PollResponse struct {
	PollId            string
	ActorId           UserId
	SelectedOptionIds []string
	UpdatedAt         time.Time
}

type PollCreationData struct {
	SessionId     SessionId
	Question      string
	Options       []string
	AllowMultiple bool
}
