package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

// RepositoryPort defines data access for user accounts.
type RepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByNickname(ctx context.Context, nickname string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, nickname, phone, imageURL string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Withdraw(ctx context.Context, id int64, at time.Time) error
}

// Repository provides PostgreSQL backed persistence for users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, user_name, nickname, email, phone, birth_date, image_url,
	password_hash, info_agreement, role, state, joined_at, withdrawn_at, created_at, updated_at`

func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id)
	return scanUser(row)
}

func (r *Repository) FindByNickname(ctx context.Context, nickname string) (*User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE nickname = $1`, userColumns), nickname)
	return scanUser(row)
}

func (r *Repository) UpdateProfile(ctx context.Context, id int64, nickname, phone, imageURL string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET nickname = $2, phone = $3, image_url = $4, updated_at = NOW()
		WHERE id = $1`, id, nickname, phone, imageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: nickname already in use", httpx.ErrDuplicate)
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) Withdraw(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET state = $2, withdrawn_at = $3, updated_at = NOW()
		WHERE id = $1 AND state <> $2`, id, StateWithdrawn, at)
	if err != nil {
		return fmt.Errorf("withdraw user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u           User
		phone       pgtype.Text
		birthDate   pgtype.Text
		imageURL    pgtype.Text
		withdrawnAt pgtype.Timestamptz
	)
	err := row.Scan(&u.ID, &u.UserName, &u.Nickname, &u.Email, &phone, &birthDate,
		&imageURL, &u.PasswordHash, &u.InfoAgreement, &u.Role, &u.State,
		&u.JoinedAt, &withdrawnAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	u.Phone = phone.String
	u.BirthDate = birthDate.String
	u.ImageURL = imageURL.String
	if withdrawnAt.Valid {
		t := withdrawnAt.Time
		u.WithdrawnAt = &t
	}
	return &u, nil
}
