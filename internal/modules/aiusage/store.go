// README: ai_usage persistence with a lazy monthly reset.
package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"planit/internal/infra"
)

const monthLayout = "2006-01"

// Store handles ai_usage persistence.
type Store struct {
	db      infra.Querier
	monthly int
	now     func() time.Time
}

// NewStore returns a Store granting monthly tokens per user; values below one use DefaultTokens.
func NewStore(db infra.Querier, monthly int) *Store {
	if monthly < 1 {
		monthly = DefaultTokens
	}
	return &Store{db: db, monthly: monthly, now: time.Now}
}

func (s *Store) month() string { return s.now().Format(monthLayout) }

// UseToken atomically checks the monthly quota and deducts one token.
// It resets the counter when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseToken(ctx context.Context, uid string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, s.month(), s.monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// Refund gives back a token consumed by a generation that failed upstream.
func (s *Store) Refund(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET tokens_remaining = LEAST(tokens_remaining + 1, $1)
		WHERE uid = $2 AND last_reset_month = $3
	`, s.monthly, uid, s.month())
	return err
}

// EnsureUser inserts a new ai_usage row for uid with the full allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.monthly, s.month())
	return err
}

// Usage reports what uid has left this month. Unknown users and stale months read as a full allowance.
func (s *Store) Usage(ctx context.Context, uid string) (Usage, error) {
	month := s.month()
	var remaining int
	var last string
	err := s.db.QueryRow(ctx, `SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid).
		Scan(&remaining, &last)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && last < month) {
		return Usage{TokensRemaining: s.monthly, Month: month}, nil
	}
	if err != nil {
		return Usage{}, err
	}
	return Usage{TokensRemaining: remaining, Month: month}, nil
}
