package notice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investmetic/investmetic/internal/platform/db"
	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
)

// RepositoryPort defines data access for notices and their attachments.
type RepositoryPort interface {
	Save(ctx context.Context, n *Notice, attachments []File) error
	FindByID(ctx context.Context, id int64) (*Notice, []File, error)
	Update(ctx context.Context, n *Notice, attachments []File) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, keyword string, page shared.PageRequest) ([]Notice, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed notice store.
func NewRepository(pool *pgxpool.Pool) RepositoryPort {
	return &repository{pool: pool}
}

func (r *repository) Save(ctx context.Context, n *Notice, attachments []File) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO notices (author_id, title, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			n.AuthorID, n.Title, n.Content,
		).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert notice: %w", err)
		}
		return insertFiles(ctx, tx, n.ID, attachments)
	})
}

func insertFiles(ctx context.Context, tx pgx.Tx, noticeID int64, attachments []File) error {
	for i := range attachments {
		f := &attachments[i]
		f.NoticeID = noticeID
		err := tx.QueryRow(ctx, `
			INSERT INTO notice_files (notice_id, file_name, file_url, storage_key)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			noticeID, f.FileName, f.FileURL, f.Key,
		).Scan(&f.ID)
		if err != nil {
			return fmt.Errorf("insert notice file: %w", err)
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Notice, []File, error) {
	var n Notice
	err := r.pool.QueryRow(ctx, `
		SELECT id, author_id, title, content, created_at, updated_at
		FROM notices WHERE id = $1`, id,
	).Scan(&n.ID, &n.AuthorID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: notice", httpx.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("select notice: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, notice_id, file_name, file_url, storage_key
		FROM notice_files WHERE notice_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("select notice files: %w", err)
	}
	defer rows.Close()

	var attachments []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.NoticeID, &f.FileName, &f.FileURL, &f.Key); err != nil {
			return nil, nil, fmt.Errorf("scan notice file: %w", err)
		}
		attachments = append(attachments, f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate notice files: %w", err)
	}
	return &n, attachments, nil
}

func (r *repository) Update(ctx context.Context, n *Notice, attachments []File) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE notices SET title = $1, content = $2, updated_at = now()
			WHERE id = $3`,
			n.Title, n.Content, n.ID)
		if err != nil {
			return fmt.Errorf("update notice: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: notice", httpx.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM notice_files WHERE notice_id = $1`, n.ID); err != nil {
			return fmt.Errorf("clear notice files: %w", err)
		}
		return insertFiles(ctx, tx, n.ID, attachments)
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM notice_files WHERE notice_id = $1`, id); err != nil {
			return fmt.Errorf("delete notice files: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete notice: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: notice", httpx.ErrNotFound)
		}
		return nil
	})
}

func (r *repository) List(ctx context.Context, keyword string, page shared.PageRequest) ([]Notice, int, error) {
	conditions := []string{}
	args := []any{}
	argPos := 1

	if keyword = strings.TrimSpace(keyword); keyword != "" {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+keyword+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM notices"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notices: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, author_id, title, content, created_at, updated_at
		FROM notices%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select notices: %w", err)
	}
	defer rows.Close()

	var notices []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notices: %w", err)
	}
	return notices, total, nil
}
