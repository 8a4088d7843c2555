package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.CommentStorage interface)
// =========================================================================

func (s *Storage) CreateComment(data domain.CommentCreationData) (*domain.Comment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var comment *domain.Comment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		comment, err = s.createComment(tx, data)
		return err
	})
	return comment, err
}

func (s *Storage) GetComment(id domain.CommentId) (*domain.Comment, error) {
	return s.getComment(s.db, id)
}

func (s *Storage) CommentsForContent(contentId domain.ContentId) ([]domain.Comment, error) {
	return s.commentsForContent(s.db, contentId)
}

func (s *Storage) UpdateCommentBody(id domain.CommentId, body string) (*domain.Comment, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var comment *domain.Comment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		comment, err = s.updateCommentBody(tx, id, body)
		return err
	})
	return comment, err
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteComment(tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

const commentColumns = "id, content_item_id, author_id, parent_comment_id, body, created_at, edited_at"

func scanComment(row *sql.Row) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(&comment.Id, &comment.ContentItemId, &comment.AuthorId,
		&comment.ParentCommentId, &comment.Body, &comment.CreatedAt, &comment.EditedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &comment, nil
}

func (s *Storage) createComment(q Querier, data domain.CommentCreationData) (*domain.Comment, error) {
	row := q.QueryRow(`
        INSERT INTO comments(content_item_id, author_id, parent_comment_id, body)
        VALUES($1, $2, $3, $4)
        RETURNING `+commentColumns,
		data.ContentItemId, data.AuthorId, data.ParentCommentId, data.Body)
	return scanComment(row)
}

func (s *Storage) getComment(q Querier, id domain.CommentId) (*domain.Comment, error) {
	row := q.QueryRow(`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row)
}

func (s *Storage) commentsForContent(q Querier, contentId domain.ContentId) ([]domain.Comment, error) {
	rows, err := q.Query(`
        SELECT `+commentColumns+` FROM comments
        WHERE content_item_id = $1
        ORDER BY created_at, id`, contentId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.Id, &comment.ContentItemId, &comment.AuthorId,
			&comment.ParentCommentId, &comment.Body, &comment.CreatedAt, &comment.EditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *Storage) updateCommentBody(q Querier, id domain.CommentId, body string) (*domain.Comment, error) {
	row := q.QueryRow(`
        UPDATE comments SET body = $1, edited_at = now()
        WHERE id = $2
        RETURNING `+commentColumns, body, id)
	return scanComment(row)
}

func (s *Storage) deleteComment(q Querier, id domain.CommentId) error {
	result, err := q.Exec("DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for comment deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return notFound("Comment not found")
	}
	return nil
}
