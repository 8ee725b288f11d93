package qna

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investmetic/investmetic/internal/platform/db"
	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/users"
)

// Repository provides PostgreSQL backed persistence for inquiries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// columnFor maps compiled condition fields onto the joined listing query.
// Every searchable dimension must appear here; unknown fields are a
// programming error surfaced at query build time.
func columnFor(f Field) (string, bool) {
	switch f {
	case FieldAskerID:
		return "q.user_id", true
	case FieldOwnerID:
		return "s.owner_id", true
	case FieldTitle:
		return "q.title", true
	case FieldContent:
		return "q.content", true
	case FieldStrategyName:
		return "s.name", true
	case FieldAskerNickname:
		return "asker.nickname", true
	case FieldOwnerNickname:
		return "owner.nickname", true
	case FieldState:
		return "q.state", true
	default:
		return "", false
	}
}

// renderConditions turns compiled conditions into a WHERE clause with
// positional args starting at argPos.
func renderConditions(conds []Condition, argPos int) (string, []any, error) {
	var clauses []string
	var args []any

	for _, c := range conds {
		switch {
		case c.Field == FieldTitleOrContent && c.Op == OpContains:
			clauses = append(clauses, fmt.Sprintf("(q.title ILIKE $%d OR q.content ILIKE $%d)", argPos, argPos))
			args = append(args, "%"+fmt.Sprint(c.Value)+"%")
			argPos++
		case c.Op == OpContains:
			col, ok := columnFor(c.Field)
			if !ok {
				return "", nil, fmt.Errorf("unknown search field %q", c.Field)
			}
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", col, argPos))
			args = append(args, "%"+fmt.Sprint(c.Value)+"%")
			argPos++
		case c.Op == OpEq:
			col, ok := columnFor(c.Field)
			if !ok {
				return "", nil, fmt.Errorf("unknown search field %q", c.Field)
			}
			clauses = append(clauses, fmt.Sprintf("%s = $%d", col, argPos))
			args = append(args, c.Value)
			argPos++
		default:
			return "", nil, fmt.Errorf("unknown condition op %q", c.Op)
		}
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = "WHERE " + strings.Join(clauses, " AND ")
	}
	return whereClause, args, nil
}

func orderBy(page shared.PageRequest) string {
	col := "q.created_at"
	if page.SortBy == "state" {
		col = "q.state"
	}
	dir := "DESC"
	if page.SortDir == "ASC" {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, q.id %s", col, dir, dir)
}

const viewSelect = `
	SELECT q.id, q.user_id, q.strategy_id, q.title, q.content, q.state, q.created_at, q.updated_at,
	       asker.id, asker.nickname, asker.image_url, asker.role,
	       s.id, s.owner_id, s.name,
	       owner.id, owner.nickname, owner.image_url, owner.role,
	       a.id, a.question_id, a.content, a.created_at
	FROM questions q
	LEFT JOIN users asker ON asker.id = q.user_id
	LEFT JOIN strategies s ON s.id = q.strategy_id
	LEFT JOIN users owner ON owner.id = s.owner_id
	LEFT JOIN answers a ON a.question_id = q.id
`

func (r *Repository) SaveQuestion(ctx context.Context, q *Question) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (user_id, strategy_id, title, content, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		q.UserID, q.StrategyID, q.Title, q.Content, q.State).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *Repository) FindQuestionByID(ctx context.Context, id int64) (*QuestionView, error) {
	row := r.pool.QueryRow(ctx, viewSelect+` WHERE q.id = $1`, id)
	view, err := scanView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: question", httpx.ErrNotFound)
		}
		return nil, err
	}
	return view, nil
}

// DeleteQuestion removes the question and cascades to its answer in one
// transaction.
func (r *Repository) DeleteQuestion(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, id); err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: question", httpx.ErrNotFound)
		}
		return nil
	})
}

func (r *Repository) Search(ctx context.Context, conds []Condition, page shared.PageRequest) ([]QuestionView, int, error) {
	whereClause, args, err := renderConditions(conds, 1)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM questions q
		LEFT JOIN users asker ON asker.id = q.user_id
		LEFT JOIN strategies s ON s.id = q.strategy_id
		LEFT JOIN users owner ON owner.id = s.owner_id
		%s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	argPos := len(args) + 1
	query := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d", viewSelect, whereClause, orderBy(page), argPos, argPos+1)
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search questions: %w", err)
	}
	defer rows.Close()

	var views []QuestionView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// SaveAnswer inserts the reply and completes the question atomically.
func (r *Repository) SaveAnswer(ctx context.Context, questionID int64, content string) (*Answer, error) {
	answer := &Answer{QuestionID: questionID, Content: content}
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO answers (question_id, content)
			VALUES ($1, $2)
			RETURNING id, created_at`, questionID, content).
			Scan(&answer.ID, &answer.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
		tag, err := tx.Exec(ctx, `
			UPDATE questions SET state = $2, updated_at = NOW() WHERE id = $1`,
			questionID, StateCompleted)
		if err != nil {
			return fmt.Errorf("complete question: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: question", httpx.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteAnswer removes the reply and reopens the question atomically. A
// concurrent second delete sees zero rows and reports not found.
func (r *Repository) DeleteAnswer(ctx context.Context, answerID, questionID int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM answers WHERE id = $1 AND question_id = $2`, answerID, questionID)
		if err != nil {
			return fmt.Errorf("delete answer: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: answer", httpx.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE questions SET state = $2, updated_at = NOW() WHERE id = $1`,
			questionID, StateWaiting); err != nil {
			return fmt.Errorf("reopen question: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (*QuestionView, error) {
	var (
		v QuestionView

		askerID       pgtype.Int8
		askerNickname pgtype.Text
		askerImage    pgtype.Text
		askerRole     pgtype.Text

		strategyID   pgtype.Int8
		ownerRefID   pgtype.Int8
		strategyName pgtype.Text

		ownerID       pgtype.Int8
		ownerNickname pgtype.Text
		ownerImage    pgtype.Text
		ownerRole     pgtype.Text

		answerID        pgtype.Int8
		answerQID       pgtype.Int8
		answerContent   pgtype.Text
		answerCreatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&v.Question.ID, &v.Question.UserID, &v.Question.StrategyID,
		&v.Question.Title, &v.Question.Content, &v.Question.State,
		&v.Question.CreatedAt, &v.Question.UpdatedAt,
		&askerID, &askerNickname, &askerImage, &askerRole,
		&strategyID, &ownerRefID, &strategyName,
		&ownerID, &ownerNickname, &ownerImage, &ownerRole,
		&answerID, &answerQID, &answerContent, &answerCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if askerID.Valid {
		v.Asker = &users.User{
			ID:       askerID.Int64,
			Nickname: askerNickname.String,
			ImageURL: askerImage.String,
			Role:     users.Role(askerRole.String),
		}
	}
	if strategyID.Valid {
		v.Strategy = &strategy.Strategy{
			ID:      strategyID.Int64,
			OwnerID: ownerRefID.Int64,
			Name:    strategyName.String,
		}
	}
	if ownerID.Valid {
		v.Owner = &users.User{
			ID:       ownerID.Int64,
			Nickname: ownerNickname.String,
			ImageURL: ownerImage.String,
			Role:     users.Role(ownerRole.String),
		}
	}
	if answerID.Valid {
		v.Answer = &Answer{
			ID:         answerID.Int64,
			QuestionID: answerQID.Int64,
			Content:    answerContent.String,
			CreatedAt:  answerCreatedAt.Time,
		}
	}
	return &v, nil
}
