package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.ConnectionStorage interface)
// =========================================================================

func (s *Storage) CreateConnection(requester, recipient domain.UserId) (*domain.Connection, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var conn *domain.Connection
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		conn, err = s.createConnection(tx, requester, recipient)
		return err
	})
	return conn, err
}

func (s *Storage) ConnectionBetween(a, b domain.UserId) (*domain.Connection, error) {
	var conn domain.Connection
	err := s.db.QueryRow(`
        SELECT `+connectionColumns+` FROM connections
        WHERE LEAST(requester_id, recipient_id) = LEAST($1::bigint, $2::bigint)
          AND GREATEST(requester_id, recipient_id) = GREATEST($1::bigint, $2::bigint)`,
		a, b,
	).Scan(&conn.Id, &conn.RequesterId, &conn.RecipientId, &conn.Status, &conn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Connection not found")
		}
		return nil, fmt.Errorf("failed to query connection: %w", err)
	}
	return &conn, nil
}

func (s *Storage) AcceptConnection(id int64) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.acceptConnection(tx, id)
	})
}

func (s *Storage) DeleteConnection(id int64) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteConnection(tx, id)
	})
}

func (s *Storage) ConnectionsFor(user domain.UserId) ([]domain.Connection, error) {
	rows, err := s.db.Query(`
        SELECT `+connectionColumns+` FROM connections
        WHERE requester_id = $1 OR recipient_id = $1
        ORDER BY created_at DESC, id DESC`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var conn domain.Connection
		if err := rows.Scan(&conn.Id, &conn.RequesterId, &conn.RecipientId, &conn.Status, &conn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		conns = append(conns, conn)
	}
	return conns, rows.Err()
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

const connectionColumns = "id, requester_id, recipient_id, status, created_at"

func (s *Storage) createConnection(q Querier, requester, recipient domain.UserId) (*domain.Connection, error) {
	var conn domain.Connection
	err := q.QueryRow(`
        INSERT INTO connections(requester_id, recipient_id)
        VALUES($1, $2)
        RETURNING `+connectionColumns,
		requester, recipient,
	).Scan(&conn.Id, &conn.RequesterId, &conn.RecipientId, &conn.Status, &conn.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("A connection for this pair already exists")
		}
		return nil, fmt.Errorf("failed to insert connection: %w", err)
	}
	return &conn, nil
}

func (s *Storage) acceptConnection(q Querier, id int64) error {
	result, err := q.Exec("UPDATE connections SET status = 'accepted' WHERE id = $1 AND status = 'pending'", id)
	if err != nil {
		return fmt.Errorf("failed to accept connection: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for connection accept: %w", err)
	}
	if rowsAffected == 0 {
		return notFound("No pending connection to accept")
	}
	return nil
}

func (s *Storage) deleteConnection(q Querier, id int64) error {
	result, err := q.Exec("DELETE FROM connections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for connection deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return notFound("Connection not found")
	}
	return nil
}
