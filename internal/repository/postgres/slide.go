package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/rms-content/internal/domain"
)

var slideUniqueConstraints = map[string]error{
	"slides_image_name_key": domain.ErrDuplicateAsset,
	"slides_pkey":           domain.ErrDuplicateID,
}

// SlideRepository implements domain.SlideRepository using Postgres.
type SlideRepository struct {
	pool *pgxpool.Pool
}

const slideColumns = `id, caption, "index", image_name`

func scanSlide(row pgx.CollectableRow) (domain.Slide, error) {
	var s domain.Slide
	err := row.Scan(&s.ID, &s.Caption, &s.Index, &s.ImageName)
	return s, err
}

func (r *SlideRepository) List(ctx context.Context) ([]domain.Slide, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+slideColumns+` FROM slides ORDER BY "index", id`)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	slides, err := pgx.CollectRows(rows, scanSlide)
	if err != nil {
		return nil, fmt.Errorf("scan slides: %w", err)
	}
	if slides == nil {
		slides = []domain.Slide{}
	}
	return slides, nil
}

func (r *SlideRepository) GetByID(ctx context.Context, id int64) (*domain.Slide, error) {
	return r.getOne(ctx, `SELECT `+slideColumns+` FROM slides WHERE id = $1`, id)
}

func (r *SlideRepository) GetByImageName(ctx context.Context, name string) (*domain.Slide, error) {
	return r.getOne(ctx, `SELECT `+slideColumns+` FROM slides WHERE image_name = $1`, name)
}

func (r *SlideRepository) getOne(ctx context.Context, query string, arg any) (*domain.Slide, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get slide: %w", err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanSlide)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slide: %w", err)
	}
	return &s, nil
}

func (r *SlideRepository) Create(ctx context.Context, slide *domain.Slide) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO slides (caption, "index", image_name) VALUES ($1, $2, $3) RETURNING id`,
		slide.Caption, slide.Index, slide.ImageName,
	).Scan(&slide.ID)
	if err != nil {
		if mapped := constraintError(err, slideUniqueConstraints); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert slide: %w", err)
	}
	return nil
}

func (r *SlideRepository) Update(ctx context.Context, id int64, patch domain.SlidePatch) error {
	if patch.Empty() {
		return nil
	}

	var cols []string
	var args []any
	if patch.ID != nil {
		cols = append(cols, "id")
		args = append(args, *patch.ID)
	}
	if patch.Caption != nil {
		cols = append(cols, "caption")
		args = append(args, *patch.Caption)
	}
	if patch.Index != nil {
		cols = append(cols, `"index"`)
		args = append(args, *patch.Index)
	}
	if patch.ImageName != nil {
		cols = append(cols, "image_name")
		args = append(args, *patch.ImageName)
	}
	set, next := setClause(cols)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, fmt.Sprintf("UPDATE slides SET %s WHERE id = $%d", set, next), args...)
	if err != nil {
		if mapped := constraintError(err, slideUniqueConstraints); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update slide: %w", err)
	}
	return requireRow(tag)
}

func (r *SlideRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM slides WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	return requireRow(tag)
}
