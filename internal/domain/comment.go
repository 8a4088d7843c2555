package domain

import "time"

// Comment belongs to one content item and optionally replies to another
// comment of the same item. ParentCommentId is a weak reference: the parent
// may be deleted or unloaded, reconstruction must tolerate that.
type Comment struct {
	Id              CommentId
	ContentItemId   ContentId
	AuthorId        UserId
	ParentCommentId *CommentId
	Body            string
	CreatedAt       time.Time
	EditedAt        *time.Time
}

type CommentCreationData struct {
	ContentItemId   ContentId
	AuthorId        UserId
	ParentCommentId *CommentId
	Body            string
}
