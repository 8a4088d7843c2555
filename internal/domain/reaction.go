package domain

import "time"

type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionHelpful    ReactionKind = "helpful"
	ReactionInsightful ReactionKind = "insightful"
	ReactionLove       ReactionKind = "love"
)

func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionHelpful, ReactionInsightful, ReactionLove:
		return true
	}
	return false
}

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Reaction rows are unique per (target, actor, kind); the database enforces
// it, toggling relies on it.
type Reaction struct {
	Id         string // uuid
	TargetId   int64
	TargetKind TargetKind
	ActorId    UserId
	Kind       ReactionKind
	CreatedAt  time.Time
}
