package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/rms-content/internal/domain"
)

// ArticleRepository implements domain.ArticleRepository using Postgres.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

const articleColumns = `id, title, content, page_id, "index"`

func scanArticle(row pgx.CollectableRow) (domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.PageID, &a.Index)
	return a, err
}

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY page_id, "index", id`)
}

func (r *ArticleRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles WHERE page_id = $1 ORDER BY "index", id`, pageID)
}

func (r *ArticleRepository) query(ctx context.Context, query string, args ...any) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	articles, err := pgx.CollectRows(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("scan articles: %w", err)
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanArticle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO articles (title, content, page_id, "index") VALUES ($1, $2, $3, $4) RETURNING id`,
		article.Title, article.Content, article.PageID, article.Index,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, id int64, patch domain.ArticlePatch) error {
	if patch.Empty() {
		return nil
	}

	var cols []string
	var args []any
	if patch.Title != nil {
		cols = append(cols, "title")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		cols = append(cols, "content")
		args = append(args, *patch.Content)
	}
	if patch.PageID != nil {
		cols = append(cols, "page_id")
		args = append(args, *patch.PageID)
	}
	if patch.Index != nil {
		cols = append(cols, `"index"`)
		args = append(args, *patch.Index)
	}
	set, next := setClause(cols)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, fmt.Sprintf("UPDATE articles SET %s WHERE id = $%d", set, next), args...)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return requireRow(tag)
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return requireRow(tag)
}
