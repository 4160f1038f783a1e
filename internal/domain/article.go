package domain

import "context"

// Article is a block of content shown on a content page.
type Article struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	PageID  int64  `json:"page_id"`
	Index   int    `json:"index"`
}

// ArticlePatch is a validated set of article column changes.
type ArticlePatch struct {
	Title   *string
	Content *string
	PageID  *int64
	Index   *int
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.PageID == nil && p.Index == nil
}

type ArticleRepository interface {
	List(ctx context.Context) ([]Article, error)
	ListByPage(ctx context.Context, pageID int64) ([]Article, error)
	GetByID(ctx context.Context, id int64) (*Article, error)
	Create(ctx context.Context, article *Article) error
	Update(ctx context.Context, id int64, patch ArticlePatch) error
	Delete(ctx context.Context, id int64) error
}
