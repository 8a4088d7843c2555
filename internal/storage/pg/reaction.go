package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy service.ReactionStorage and service.ReactionReader)
// =========================================================================

func (s *Storage) ReactionsForTarget(targetId int64, targetKind domain.TargetKind) ([]domain.Reaction, error) {
	return s.reactions(s.db, `
        SELECT `+reactionColumns+` FROM reactions
        WHERE target_kind = $1 AND target_id = $2
        ORDER BY created_at, id`, targetKind, targetId)
}

// ReactionsForThread loads the reactions on a content item together with the
// reactions on all of its comments, one query for the composed thread view.
func (s *Storage) ReactionsForThread(contentId domain.ContentId) ([]domain.Reaction, error) {
	return s.reactions(s.db, `
        SELECT `+reactionColumns+` FROM reactions
        WHERE (target_kind = 'post' AND target_id = $1)
           OR (target_kind = 'comment' AND target_id IN (SELECT id FROM comments WHERE content_item_id = $1))
        ORDER BY created_at, id`, contentId)
}

func (s *Storage) FindReaction(targetId int64, targetKind domain.TargetKind, actor domain.UserId, kind domain.ReactionKind) (*domain.Reaction, error) {
	var r domain.Reaction
	err := s.db.QueryRow(`
        SELECT `+reactionColumns+` FROM reactions
        WHERE target_id = $1 AND target_kind = $2 AND actor_id = $3 AND kind = $4`,
		targetId, targetKind, actor, kind,
	).Scan(&r.Id, &r.TargetId, &r.TargetKind, &r.ActorId, &r.Kind, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Reaction not found")
		}
		return nil, fmt.Errorf("failed to query reaction: %w", err)
	}
	return &r, nil
}

func (s *Storage) CreateReaction(r domain.Reaction) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.createReaction(tx, r)
	})
}

func (s *Storage) DeleteReaction(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteReaction(tx, id)
	})
}

// ReactionTargetInfo resolves a target's author and the content item that owns
// its thread. A post owns itself; a comment belongs to its item.
func (s *Storage) ReactionTargetInfo(targetId int64, targetKind domain.TargetKind) (domain.UserId, domain.ContentId, error) {
	var author domain.UserId
	var contentId domain.ContentId
	var err error

	switch targetKind {
	case domain.TargetPost:
		err = s.db.QueryRow("SELECT author_id, id FROM content_items WHERE id = $1", targetId).Scan(&author, &contentId)
	case domain.TargetComment:
		err = s.db.QueryRow("SELECT author_id, content_item_id FROM comments WHERE id = $1", targetId).Scan(&author, &contentId)
	default:
		return 0, 0, fmt.Errorf("unknown target kind %q", targetKind)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, notFound("Target not found")
		}
		return 0, 0, fmt.Errorf("failed to resolve reaction target: %w", err)
	}
	return author, contentId, nil
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

const reactionColumns = "id, target_id, target_kind, actor_id, kind, created_at"

func (s *Storage) reactions(q Querier, query string, args ...interface{}) ([]domain.Reaction, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var r domain.Reaction
		if err := rows.Scan(&r.Id, &r.TargetId, &r.TargetKind, &r.ActorId, &r.Kind, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

func (s *Storage) createReaction(q Querier, r domain.Reaction) error {
	_, err := q.Exec(`
        INSERT INTO reactions(id, target_id, target_kind, actor_id, kind)
        VALUES($1, $2, $3, $4, $5)`,
		r.Id, r.TargetId, r.TargetKind, r.ActorId, r.Kind)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("Reaction already exists")
		}
		return fmt.Errorf("failed to insert reaction: %w", err)
	}
	return nil
}

func (s *Storage) deleteReaction(q Querier, id string) error {
	result, err := q.Exec("DELETE FROM reactions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for reaction deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return notFound("Reaction not found")
	}
	return nil
}
