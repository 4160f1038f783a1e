package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/rms-content/internal/domain"
)

// SlideRepository implements domain.SlideRepository using SQLite.
type SlideRepository struct {
	db *sql.DB
}

// NewSlideRepository creates a new SQLite-backed SlideRepository.
func NewSlideRepository(db *DB) *SlideRepository {
	return &SlideRepository{db: db.SqlDB}
}

var slideUniqueColumns = map[string]error{
	"slides.image_name": domain.ErrDuplicateAsset,
	"slides.id":         domain.ErrDuplicateID,
}

const slideColumns = `id, "index", caption, image_name`

func (r *SlideRepository) List(ctx context.Context) ([]domain.Slide, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+slideColumns+` FROM slides ORDER BY "index", id`)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	slides := []domain.Slide{}
	for rows.Next() {
		var s domain.Slide
		if err := rows.Scan(&s.ID, &s.Index, &s.Caption, &s.ImageName); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

func (r *SlideRepository) GetByID(ctx context.Context, id int64) (*domain.Slide, error) {
	return r.getOne(ctx, `SELECT `+slideColumns+` FROM slides WHERE id = ?`, id)
}

func (r *SlideRepository) GetByImageName(ctx context.Context, name string) (*domain.Slide, error) {
	return r.getOne(ctx, `SELECT `+slideColumns+` FROM slides WHERE image_name = ?`, name)
}

func (r *SlideRepository) getOne(ctx context.Context, query string, arg any) (*domain.Slide, error) {
	s := &domain.Slide{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&s.ID, &s.Index, &s.Caption, &s.ImageName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slide: %w", err)
	}
	return s, nil
}

func (r *SlideRepository) Create(ctx context.Context, slide *domain.Slide) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO slides (caption, "index", image_name) VALUES (?, ?, ?)`,
		slide.Caption, slide.Index, slide.ImageName,
	)
	if err != nil {
		if mapped := constraintError(err, slideUniqueColumns); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert slide: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	slide.ID = id
	return nil
}

// Update applies the patch to the row identified by id in one statement.
// A patch carrying ID re-keys the row.
func (r *SlideRepository) Update(ctx context.Context, id int64, patch domain.SlidePatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []any
	if patch.ID != nil {
		sets = append(sets, "id = ?")
		args = append(args, *patch.ID)
	}
	if patch.Caption != nil {
		sets = append(sets, "caption = ?")
		args = append(args, *patch.Caption)
	}
	if patch.Index != nil {
		sets = append(sets, `"index" = ?`)
		args = append(args, *patch.Index)
	}
	if patch.ImageName != nil {
		sets = append(sets, "image_name = ?")
		args = append(args, *patch.ImageName)
	}
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE slides SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if mapped := constraintError(err, slideUniqueColumns); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update slide: %w", err)
	}
	return requireRow(result)
}

func (r *SlideRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM slides WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
