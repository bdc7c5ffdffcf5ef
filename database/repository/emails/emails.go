// File: database/repository/emails/emails.go
package emailsRepo

import (
	"context"
	"errors"
	"fmt"

	"cmueats/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmailExists is returned when the address is already in the table.
var ErrEmailExists = errors.New("email already registered")

type EmailRepository interface {
	Insert(ctx context.Context, name, email string) (*models.EmailSignup, error)
	List(ctx context.Context, limit int) ([]models.EmailSignup, error)
}

// querier is the subset of pgxpool.Pool the repository uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresEmailRepo struct {
	db querier
}

func NewPostgresEmailRepo(pool *pgxpool.Pool) EmailRepository {
	return &postgresEmailRepo{db: pool}
}

func (r *postgresEmailRepo) Insert(ctx context.Context, name, email string) (*models.EmailSignup, error) {
	const stmt = `
INSERT INTO emails (name, email)
VALUES ($1, $2)
RETURNING id, name, email, created_at`
	var signup models.EmailSignup
	err := r.db.QueryRow(ctx, stmt, name, email).Scan(&signup.ID, &signup.Name, &signup.Email, &signup.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("insert email: %w", err)
	}
	return &signup, nil
}

func (r *postgresEmailRepo) List(ctx context.Context, limit int) ([]models.EmailSignup, error) {
	const query = `
SELECT id, name, email, created_at
FROM emails
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	signups := []models.EmailSignup{}
	for rows.Next() {
		var s models.EmailSignup
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		signups = append(signups, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate emails: %w", rows.Err())
	}
	return signups, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
