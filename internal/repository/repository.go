package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) CreateView(ctx context.Context, v *domain.SavedView) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_views(id, name, resource, query, created_at) VALUES ($1,$2,$3,$4,$5)`,
		v.ID, v.Name, v.Resource, v.Query, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert saved view: %w", err)
	}
	return nil
}

func (r *Repos) ListViews(ctx context.Context, resource domain.Resource) ([]domain.SavedView, error) {
	out := []domain.SavedView{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, resource, query, created_at FROM saved_views WHERE resource = $1 ORDER BY name, created_at`,
		resource)
	if err != nil {
		return nil, fmt.Errorf("select saved views: %w", err)
	}
	return out, nil
}

func (r *Repos) GetView(ctx context.Context, id uuid.UUID) (*domain.SavedView, error) {
	var v domain.SavedView
	err := r.db.GetContext(ctx, &v,
		`SELECT id, name, resource, query, created_at FROM saved_views WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select saved view: %w", err)
	}
	return &v, nil
}

func (r *Repos) DeleteView(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_views WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saved view: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved view: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
