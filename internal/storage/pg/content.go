package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.ContentStorage interface)
// =========================================================================

func (s *Storage) CreateContent(data domain.ContentCreationData) (*domain.ContentItem, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var item *domain.ContentItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		item, err = s.createContent(tx, data)
		return err
	})
	return item, err
}

func (s *Storage) GetContent(id domain.ContentId) (*domain.ContentItem, error) {
	return s.getContent(s.db, id)
}

func (s *Storage) ListContent(scope domain.Scope, scopeId string) ([]domain.ContentItem, error) {
	return s.listContent(s.db, scope, scopeId)
}

func (s *Storage) UpdateContentBody(id domain.ContentId, body string) (*domain.ContentItem, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var item *domain.ContentItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		item, err = s.updateContentBody(tx, id, body)
		return err
	})
	return item, err
}

func (s *Storage) DeleteContent(id domain.ContentId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteContent(tx, id)
	})
}

func (s *Storage) SetContentPinned(id domain.ContentId, pinned bool) (*domain.ContentItem, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var item *domain.ContentItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		item, err = s.setContentPinned(tx, id, pinned)
		return err
	})
	return item, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

const contentColumns = "id, author_id, scope, scope_id, kind, body, pinned, created_at, edited_at"

func scanContentItem(row *sql.Row) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := row.Scan(&item.Id, &item.AuthorId, &item.Scope, &item.ScopeId, &item.Kind,
		&item.Body, &item.Pinned, &item.CreatedAt, &item.EditedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Content not found")
		}
		return nil, fmt.Errorf("failed to scan content item: %w", err)
	}
	return &item, nil
}

func (s *Storage) createContent(q Querier, data domain.ContentCreationData) (*domain.ContentItem, error) {
	row := q.QueryRow(`
        INSERT INTO content_items(author_id, scope, scope_id, kind, body)
        VALUES($1, $2, $3, $4, $5)
        RETURNING `+contentColumns,
		data.AuthorId, data.Scope, data.ScopeId, data.Kind, data.Body)
	return scanContentItem(row)
}

func (s *Storage) getContent(q Querier, id domain.ContentId) (*domain.ContentItem, error) {
	row := q.QueryRow(`SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	return scanContentItem(row)
}

func (s *Storage) listContent(q Querier, scope domain.Scope, scopeId string) ([]domain.ContentItem, error) {
	rows, err := q.Query(`
        SELECT `+contentColumns+` FROM content_items
        WHERE scope = $1 AND scope_id = $2
        ORDER BY pinned DESC, created_at DESC, id DESC`, scope, scopeId)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		if err := rows.Scan(&item.Id, &item.AuthorId, &item.Scope, &item.ScopeId, &item.Kind,
			&item.Body, &item.Pinned, &item.CreatedAt, &item.EditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Storage) updateContentBody(q Querier, id domain.ContentId, body string) (*domain.ContentItem, error) {
	row := q.QueryRow(`
        UPDATE content_items SET body = $1, edited_at = now()
        WHERE id = $2
        RETURNING `+contentColumns, body, id)
	return scanContentItem(row)
}

func (s *Storage) deleteContent(q Querier, id domain.ContentId) error {
	result, err := q.Exec("DELETE FROM content_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for content deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return notFound("Content not found")
	}
	return nil
}

func (s *Storage) setContentPinned(q Querier, id domain.ContentId, pinned bool) (*domain.ContentItem, error) {
	row := q.QueryRow(`
        UPDATE content_items SET pinned = $1
        WHERE id = $2
        RETURNING `+contentColumns, pinned, id)
	return scanContentItem(row)
}
