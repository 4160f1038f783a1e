package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/rms-content/internal/domain"
)

// ArticleRepository implements domain.ArticleRepository using SQLite.
type ArticleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new SQLite-backed ArticleRepository.
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db.SqlDB}
}

const articleColumns = `id, title, content, page_id, "index"`

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY page_id, "index", id`)
}

func (r *ArticleRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.Article, error) {
	return r.query(ctx, `SELECT `+articleColumns+` FROM articles WHERE page_id = ? ORDER BY "index", id`, pageID)
}

func (r *ArticleRepository) query(ctx context.Context, query string, args ...any) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.PageID, &a.Index); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	a := &domain.Article{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &a.Content, &a.PageID, &a.Index)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (title, content, page_id, "index") VALUES (?, ?, ?, ?)`,
		article.Title, article.Content, article.PageID, article.Index,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	article.ID = id
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, id int64, patch domain.ArticlePatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.PageID != nil {
		sets = append(sets, "page_id = ?")
		args = append(args, *patch.PageID)
	}
	if patch.Index != nil {
		sets = append(sets, `"index" = ?`)
		args = append(args, *patch.Index)
	}
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE articles SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return requireRow(result)
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return requireRow(result)
}
