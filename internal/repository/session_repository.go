package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Create inserts the session and its two participant rows in one
// transaction; the unique request_id index rejects a second session for the
// same request with a conflict.
func (r *PostgresSessionRepository) Create(ctx context.Context, s session.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO sessions (id, request_id, scheduled_at, duration_minutes, location, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.RequestID, s.ScheduledAt, s.DurationMinutes, s.Location, s.Notes, s.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return session.ErrSessionExists
		}
		if isForeignKeyViolation(err) {
			return session.ErrRequestMissing
		}
		return err
	}

	for _, p := range s.Participants {
		_, err = tx.Exec(ctx,
			`INSERT INTO session_participants (id, session_id, user_id) VALUES ($1, $2, $3)`,
			p.ID, p.SessionID, p.UserID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return session.ErrRequestMissing
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	row := r.db.QueryRow(ctx, selectSession+` WHERE id = $1`, id)

	s, err := scanSession(row)
	if err != nil {
		return session.Session{}, err
	}

	parts, err := r.participants(ctx, []uuid.UUID{s.ID})
	if err != nil {
		return session.Session{}, err
	}
	s.Participants = parts[s.ID]
	return s, nil
}

func (r *PostgresSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]session.Session, error) {
	rows, err := r.db.Query(ctx,
		selectSession+`
		 WHERE id IN (SELECT session_id FROM session_participants WHERE user_id = $1)
		 ORDER BY scheduled_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]session.Session, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var s session.Session
		err := rows.Scan(&s.ID, &s.RequestID, &s.ScheduledAt, &s.DurationMinutes,
			&s.Location, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return out, nil
	}

	parts, err := r.participants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Participants = parts[out[i].ID]
	}
	return out, nil
}

// Update is conditional on the row not being cancelled, so a writer holding
// a stale scheduled copy cannot overwrite a concurrent cancellation.
func (r *PostgresSessionRepository) Update(ctx context.Context, s session.Session) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE sessions
		 SET scheduled_at = $1, duration_minutes = $2, location = $3, notes = $4, status = $5, updated_at = now()
		 WHERE id = $6 AND status <> 'cancelled'`,
		s.ScheduledAt, s.DurationMinutes, s.Location, s.Notes, s.Status, s.ID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		row := r.db.QueryRow(ctx, `SELECT status FROM sessions WHERE id = $1`, s.ID)
		var status session.Status
		if err := row.Scan(&status); err != nil {
			if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
				return session.ErrNotFound
			}
			return err
		}
		return session.ErrCancelled
	}
	return nil
}

func (r *PostgresSessionRepository) UpdateParticipant(ctx context.Context, p session.Participant) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE session_participants
		 SET attended = $1, feedback = $2, rating = $3
		 WHERE session_id = $4 AND user_id = $5`,
		p.Attended, p.Feedback, p.Rating, p.SessionID, p.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return session.ErrParticipantNotFound
	}
	return nil
}

func (r *PostgresSessionRepository) participants(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID][]session.Participant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, user_id, attended, feedback, rating
		 FROM session_participants
		 WHERE session_id = ANY($1)`,
		sessionIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]session.Participant, len(sessionIDs))
	for rows.Next() {
		var p session.Participant
		if err := rows.Scan(&p.ID, &p.SessionID, &p.UserID, &p.Attended, &p.Feedback, &p.Rating); err != nil {
			return nil, err
		}
		out[p.SessionID] = append(out[p.SessionID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectSession = `SELECT id, request_id, scheduled_at, duration_minutes, location, notes, status, created_at, updated_at FROM sessions`

func scanSession(row database.Row) (session.Session, error) {
	var s session.Session
	err := row.Scan(&s.ID, &s.RequestID, &s.ScheduledAt, &s.DurationMinutes,
		&s.Location, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	return s, nil
}
