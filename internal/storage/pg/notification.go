package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.NotificationStorage interface)
// =========================================================================

func (s *Storage) CreateNotification(n domain.Notification) (domain.Notification, error) {
	err := s.db.QueryRow(`
        INSERT INTO notifications(id, recipient_id, kind, title, body, link)
        VALUES($1, $2, $3, $4, $5, $6)
        RETURNING is_read, created_at`,
		n.Id, n.RecipientId, n.Kind, n.Title, n.Body, n.Link,
	).Scan(&n.Read, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	return n, nil
}

func (s *Storage) Notifications(recipient domain.UserId, limit int) ([]domain.Notification, error) {
	rows, err := s.db.Query(`
        SELECT id, recipient_id, kind, title, body, link, is_read, created_at
        FROM notifications WHERE recipient_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2`, recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.Id, &n.RecipientId, &n.Kind, &n.Title, &n.Body, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Storage) UnreadNotificationCount(recipient domain.UserId) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT is_read", recipient).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead flips the read flag and reports whether the row was
// unread before. Flipping an already-read row is a no-op, not an error; the
// recipient filter keeps users from touching each other's rows.
func (s *Storage) MarkNotificationRead(recipient domain.UserId, id string) (bool, error) {
	result, err := s.db.Exec(`
        UPDATE notifications SET is_read = TRUE
        WHERE id = $1 AND recipient_id = $2 AND NOT is_read`, id, recipient)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows for notification update: %w", err)
	}
	if rowsAffected > 0 {
		return true, nil
	}

	var exists bool
	err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)", id, recipient).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check notification existence: %w", err)
	}
	if !exists {
		return false, notFound("Notification not found")
	}
	return false, nil
}

func (s *Storage) MarkAllNotificationsRead(recipient domain.UserId) error {
	_, err := s.db.Exec("UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND NOT is_read", recipient)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes the row and reports whether it was unread.
func (s *Storage) DeleteNotification(recipient domain.UserId, id string) (bool, error) {
	var wasUnread bool
	err := s.db.QueryRow(`
        DELETE FROM notifications
        WHERE id = $1 AND recipient_id = $2
        RETURNING NOT is_read`, id, recipient).Scan(&wasUnread)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, notFound("Notification not found")
		}
		return false, fmt.Errorf("failed to delete notification: %w", err)
	}
	return wasUnread, nil
}
