package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/studycircle-dev/studycircle/internal/domain"
)

// =========================================================================
// Public Methods (satisfy the service.PollStorage interface)
// =========================================================================

// CreatePoll inserts the poll and its options atomically; a poll without its
// options must never be observable.
func (s *Storage) CreatePoll(poll domain.Poll) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.createPoll(tx, poll)
	})
}

func (s *Storage) GetPoll(pollId string) (*domain.Poll, error) {
	return s.getPoll(s.db, pollId)
}

func (s *Storage) PollsForSession(sessionId domain.SessionId) ([]domain.Poll, error) {
	rows, err := s.db.Query(`
        SELECT id, session_id, question, allow_multiple, is_active, created_at
        FROM polls WHERE session_id = $1
        ORDER BY created_at, id`, sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []domain.Poll
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(&poll.Id, &poll.SessionId, &poll.Question, &poll.AllowMultiple, &poll.IsActive, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range polls {
		options, err := s.pollOptions(s.db, polls[i].Id)
		if err != nil {
			return nil, err
		}
		polls[i].Options = options
	}
	return polls, nil
}

func (s *Storage) SetPollActive(pollId string, active bool) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE polls SET is_active = $1 WHERE id = $2", active, pollId)
		if err != nil {
			return fmt.Errorf("failed to update poll: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for poll update: %w", err)
		}
		if rowsAffected == 0 {
			return notFound("Poll not found")
		}
		return nil
	})
}

func (s *Storage) PollResponses(pollId string) ([]domain.PollResponse, error) {
	rows, err := s.db.Query(`
        SELECT poll_id, actor_id, selected_option_ids, updated_at
        FROM poll_responses WHERE poll_id = $1`, pollId)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll responses: %w", err)
	}
	defer rows.Close()

	var responses []domain.PollResponse
	for rows.Next() {
		var resp domain.PollResponse
		if err := rows.Scan(&resp.PollId, &resp.ActorId, pq.Array(&resp.SelectedOptionIds), &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll response: %w", err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (s *Storage) FindPollResponse(pollId string, actor domain.UserId) (*domain.PollResponse, error) {
	var resp domain.PollResponse
	err := s.db.QueryRow(`
        SELECT poll_id, actor_id, selected_option_ids, updated_at
        FROM poll_responses WHERE poll_id = $1 AND actor_id = $2`,
		pollId, actor,
	).Scan(&resp.PollId, &resp.ActorId, pq.Array(&resp.SelectedOptionIds), &resp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Poll response not found")
		}
		return nil, fmt.Errorf("failed to query poll response: %w", err)
	}
	return &resp, nil
}

func (s *Storage) UpsertPollResponse(resp domain.PollResponse) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO poll_responses(poll_id, actor_id, selected_option_ids)
            VALUES($1, $2, $3)
            ON CONFLICT (poll_id, actor_id)
            DO UPDATE SET selected_option_ids = EXCLUDED.selected_option_ids, updated_at = now()`,
			resp.PollId, resp.ActorId, pq.Array(resp.SelectedOptionIds))
		if err != nil {
			return fmt.Errorf("failed to upsert poll response: %w", err)
		}
		return nil
	})
}

func (s *Storage) DeletePollResponse(pollId string, actor domain.UserId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM poll_responses WHERE poll_id = $1 AND actor_id = $2", pollId, actor)
		if err != nil {
			return fmt.Errorf("failed to delete poll response: %w", err)
		}
		rowsDeleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for poll response deletion: %w", err)
		}
		if rowsDeleted == 0 {
			return notFound("Poll response not found")
		}
		return nil
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) createPoll(q Querier, poll domain.Poll) error {
	_, err := q.Exec(`
        INSERT INTO polls(id, session_id, question, allow_multiple, is_active)
        VALUES($1, $2, $3, $4, $5)`,
		poll.Id, poll.SessionId, poll.Question, poll.AllowMultiple, poll.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for _, opt := range poll.Options {
		_, err := q.Exec(`
            INSERT INTO poll_options(id, poll_id, text, position)
            VALUES($1, $2, $3, $4)`,
			opt.Id, poll.Id, opt.Text, opt.Position)
		if err != nil {
			return fmt.Errorf("failed to insert poll option: %w", err)
		}
	}
	return nil
}

func (s *Storage) getPoll(q Querier, pollId string) (*domain.Poll, error) {
	var poll domain.Poll
	err := q.QueryRow(`
        SELECT id, session_id, question, allow_multiple, is_active, created_at
        FROM polls WHERE id = $1`, pollId,
	).Scan(&poll.Id, &poll.SessionId, &poll.Question, &poll.AllowMultiple, &poll.IsActive, &poll.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Poll not found")
		}
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	options, err := s.pollOptions(q, pollId)
	if err != nil {
		return nil, err
	}
	poll.Options = options
	return &poll, nil
}

func (s *Storage) pollOptions(q Querier, pollId string) ([]domain.PollOption, error) {
	rows, err := q.Query(`
        SELECT id, text, position FROM poll_options
        WHERE poll_id = $1 ORDER BY position`, pollId)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.Id, &opt.Text, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
