package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, full_name, password_hash, teach_skills, learn_skills)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.FullName, u.PasswordHash, u.TeachSkills, u.LearnSkills,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, password_hash = $2, teach_skills = $3, learn_skills = $4, updated_at = now()
		 WHERE id = $5`,
		u.FullName, u.PasswordHash, u.TeachSkills, u.LearnSkills, u.ID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) ListCandidates(ctx context.Context, exclude uuid.UUID) ([]user.User, error) {
	rows, err := r.db.Query(ctx, selectUser+` WHERE id <> $1 ORDER BY username ASC`, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUserFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectUser = `SELECT id, username, full_name, password_hash, teach_skills, learn_skills, created_at, updated_at FROM users`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash,
		&u.TeachSkills, &u.LearnSkills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUserFromRows(rows database.Rows) (user.User, error) {
	var u user.User
	err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash,
		&u.TeachSkills, &u.LearnSkills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
