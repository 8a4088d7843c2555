package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.user(s.db, email)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO users(email, display_name, password_hash, is_admin)
        VALUES($1, $2, $3, $4) RETURNING id`,
		user.Email, user.DisplayName, user.PassHash, user.Admin).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, conflict("Email already registered")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT id, email, display_name, password_hash, is_admin, created_at
        FROM users WHERE email = $1`, email,
	).Scan(&user.Id, &user.Email, &user.DisplayName, &user.PassHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, notFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
