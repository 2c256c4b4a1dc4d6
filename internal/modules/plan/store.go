// README: Manual plan store backed by PostgreSQL. Days are kept as a JSONB document per plan.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"planit/internal/infra"
	"planit/internal/types"
)

type Store struct {
	db infra.Querier
}

func NewStore(db infra.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, ownerUID string, p *types.Plan) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("encode days: %w", err)
	}
	var createdAt, updatedAt time.Time
	err = s.db.QueryRow(ctx, `
		INSERT INTO plans (id, owner_uid, name, days)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, ownerUID, p.Name, days,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = &createdAt, &updatedAt
	return nil
}

// Update replaces name and days; ErrNotFound when the caller does not own id.
func (s *Store) Update(ctx context.Context, ownerUID string, p *types.Plan) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("encode days: %w", err)
	}
	var createdAt, updatedAt time.Time
	err = s.db.QueryRow(ctx, `
		UPDATE plans SET name = $3, days = $4, updated_at = NOW()
		WHERE id = $1 AND owner_uid = $2
		RETURNING created_at, updated_at`,
		p.ID, ownerUID, p.Name, days,
	).Scan(&createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = &createdAt, &updatedAt
	return nil
}

func (s *Store) Get(ctx context.Context, ownerUID, id string) (*types.Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, days, created_at, updated_at
		FROM plans
		WHERE id = $1 AND owner_uid = $2`, id, ownerUID)
	p, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// List returns the caller's plans, most recently edited first.
func (s *Store) List(ctx context.Context, ownerUID string) ([]types.Plan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, days, created_at, updated_at
		FROM plans
		WHERE owner_uid = $1
		ORDER BY updated_at DESC`, ownerUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []types.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (s *Store) Delete(ctx context.Context, ownerUID, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM plans WHERE id = $1 AND owner_uid = $2`, id, ownerUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context, ownerUID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM plans WHERE owner_uid = $1`, ownerUID).Scan(&n)
	return n, err
}

func scanPlan(row pgx.Row) (*types.Plan, error) {
	var p types.Plan
	var days []byte
	var createdAt, updatedAt time.Time
	if err := row.Scan(&p.ID, &p.Name, &days, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(days, &p.Days); err != nil {
		return nil, fmt.Errorf("decode days of plan %s: %w", p.ID, err)
	}
	p.CreatedAt, p.UpdatedAt = &createdAt, &updatedAt
	return &p, nil
}
