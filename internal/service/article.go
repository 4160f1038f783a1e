package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/msomdec/rms-content/internal/domain"
)

// Keys accepted in an article create or update besides FieldID.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldPageID  = "pageid"
)

var articleUpdateFields = []string{FieldID, FieldTitle, FieldContent, FieldPageID, FieldIndex}

// ArticleService handles content article business logic.
type ArticleService struct {
	articles domain.ArticleRepository
	logger   *slog.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles domain.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		logger:   logger.With("system", "articles"),
	}
}

func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

// ListByPage returns the articles of one content page ordered by index.
func (s *ArticleService) ListByPage(ctx context.Context, pageID int64) ([]domain.Article, error) {
	return s.articles.ListByPage(ctx, pageID)
}

func (s *ArticleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// Create validates and inserts a new article.
func (s *ArticleService) Create(ctx context.Context, a *domain.Article) error {
	if a.Title == "" || a.Content == "" {
		return fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	if a.PageID <= 0 {
		return fmt.Errorf("%w: page id must be positive", domain.ErrInvalidInput)
	}
	if a.Index < 0 {
		return fmt.Errorf("%w: index must not be negative", domain.ErrInvalidInput)
	}

	if err := s.articles.Create(ctx, a); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	s.logger.Info("article created", "id", a.ID, "page_id", a.PageID)
	return nil
}

// Update applies a partial update keyed by FieldID. Unknown keys are
// rejected before anything is written.
func (s *ArticleService) Update(ctx context.Context, fields map[string]string) (*domain.Article, error) {
	locator, ok := fields[FieldID]
	if !ok {
		return nil, fmt.Errorf("%w: id field missing in update", domain.ErrInvalidInput)
	}
	id, err := parseID(locator)
	if err != nil {
		return nil, err
	}
	if err := checkFields(fields, articleUpdateFields, "article"); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: article ID %d does not exist", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	var patch domain.ArticlePatch
	if v, ok := fields[FieldTitle]; ok {
		if v == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		patch.Title = &v
		article.Title = v
	}
	if v, ok := fields[FieldContent]; ok {
		if v == "" {
			return nil, fmt.Errorf("%w: content must not be empty", domain.ErrInvalidInput)
		}
		patch.Content = &v
		article.Content = v
	}
	if v, ok := fields[FieldPageID]; ok {
		pageID, err := parseID(v)
		if err != nil {
			return nil, err
		}
		patch.PageID = &pageID
		article.PageID = pageID
	}
	if v, ok := fields[FieldIndex]; ok {
		index, err := strconv.Atoi(v)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%w: index must be a non-negative integer", domain.ErrInvalidInput)
		}
		patch.Index = &index
		article.Index = index
	}

	if patch.Empty() {
		return article, nil
	}
	if err := s.articles.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	s.logger.Info("article updated", "id", id)
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: article ID %d does not exist", domain.ErrNotFound, id)
		}
		return fmt.Errorf("delete article: %w", err)
	}
	s.logger.Info("article deleted", "id", id)
	return nil
}
