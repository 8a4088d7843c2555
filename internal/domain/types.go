package domain

type (
	Email  = string
	UserId = int64

	ContentId = int64
	CommentId = int64

	// Groups and sessions are owned by the plain CRUD surface; the core only
	// needs their ids to scope content and live channels.
	GroupId   = string
	SessionId = string
)
