package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/pairing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresPairingRepository struct {
	db database.DB
}

func NewPostgresPairingRepository(db database.DB) *PostgresPairingRepository {
	return &PostgresPairingRepository{db: db}
}

func (r *PostgresPairingRepository) Create(ctx context.Context, req pairing.Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pairing_requests (id, requester_id, recipient_id, teach_skills, learn_skills, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.RequesterID, req.RecipientID, req.TeachSkills, req.LearnSkills, req.Message, req.Status,
	)
	if err != nil {
		// The partial unique index on (requester, recipient, pending)
		// closes the submit race: the second insert lands here.
		if isUniqueViolation(err) {
			return pairing.ErrPendingExists
		}
		return err
	}
	return nil
}

func (r *PostgresPairingRepository) GetByID(ctx context.Context, id uuid.UUID) (pairing.Request, error) {
	row := r.db.QueryRow(ctx, selectPairingRequest+` WHERE id = $1`, id)
	return scanPairingRequest(row)
}

func (r *PostgresPairingRepository) List(ctx context.Context, f pairing.ListFilter) ([]pairing.Request, error) {
	query := selectPairingRequest + ` WHERE `
	args := make([]any, 0, 2)

	switch {
	case f.Sent && !f.Recv:
		query += `requester_id = $1`
	case f.Recv && !f.Sent:
		query += `recipient_id = $1`
	default:
		query += `(requester_id = $1 OR recipient_id = $1)`
	}
	args = append(args, f.UserID)

	if f.Status != "" {
		query += ` AND status = $2`
		args = append(args, f.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pairing.Request, 0)
	for rows.Next() {
		var req pairing.Request
		err := rows.Scan(&req.ID, &req.RequesterID, &req.RecipientID, &req.TeachSkills,
			&req.LearnSkills, &req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPairingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, target pairing.Status) error {
	// Conditional update: only a still-pending row transitions, so under
	// concurrent calls at most one terminal transition wins.
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE pairing_requests SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = 'pending'`,
		target, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		exists, err := r.existsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return pairing.ErrNotFound
		}
		return pairing.ErrAlreadyResolved
	}
	return nil
}

func (r *PostgresPairingRepository) existsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pairing_requests WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const selectPairingRequest = `SELECT id, requester_id, recipient_id, teach_skills, learn_skills, message, status, created_at, updated_at FROM pairing_requests`

func scanPairingRequest(row database.Row) (pairing.Request, error) {
	var req pairing.Request
	err := row.Scan(&req.ID, &req.RequesterID, &req.RecipientID, &req.TeachSkills,
		&req.LearnSkills, &req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return pairing.Request{}, pairing.ErrNotFound
		}
		return pairing.Request{}, err
	}
	return req, nil
}
