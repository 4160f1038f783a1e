package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/service"
)

func newTestArticleService(t *testing.T) *service.ArticleService {
	t.Helper()
	return service.NewArticleService(newTestDB(t).Articles(), discardLogger())
}

func mustCreateArticle(t *testing.T, svc *service.ArticleService, title string, pageID int64, index int) *domain.Article {
	t.Helper()
	a := &domain.Article{Title: title, Content: title + " body", PageID: pageID, Index: index}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create %s: %v", title, err)
	}
	return a
}

func TestArticleService_CreateAndList(t *testing.T) {
	svc := newTestArticleService(t)
	ctx := context.Background()

	mustCreateArticle(t, svc, "second", 1, 2)
	mustCreateArticle(t, svc, "first", 1, 0)
	mustCreateArticle(t, svc, "elsewhere", 2, 0)

	page, err := svc.ListByPage(ctx, 1)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if len(page) != 2 || page[0].Title != "first" || page[1].Title != "second" {
		t.Fatalf("unexpected page articles: %+v", page)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(all))
	}

	empty, err := svc.ListByPage(ctx, 99)
	if err != nil {
		t.Fatalf("ListByPage(99): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no articles, got %d", len(empty))
	}
}

func TestArticleService_Create_Invalid(t *testing.T) {
	svc := newTestArticleService(t)
	ctx := context.Background()

	for _, a := range []domain.Article{
		{Content: "c", PageID: 1},
		{Title: "t", PageID: 1},
		{Title: "t", Content: "c"},
		{Title: "t", Content: "c", PageID: 1, Index: -1},
	} {
		if err := svc.Create(ctx, &a); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", a, err)
		}
	}
}

func TestArticleService_Update(t *testing.T) {
	svc := newTestArticleService(t)
	ctx := context.Background()

	a := mustCreateArticle(t, svc, "title", 1, 0)
	id := strconv.FormatInt(a.ID, 10)

	updated, err := svc.Update(ctx, map[string]string{
		service.FieldID:     id,
		service.FieldTitle:  "renamed",
		service.FieldPageID: "3",
		service.FieldIndex:  "4",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "renamed" || updated.PageID != 3 || updated.Index != 4 || updated.Content != "title body" {
		t.Fatalf("unexpected article: %+v", updated)
	}

	_, err = svc.Update(ctx, map[string]string{service.FieldID: id, "slideid": "2"})
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	_, err = svc.Update(ctx, map[string]string{service.FieldID: "999", service.FieldTitle: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleService_Delete(t *testing.T) {
	svc := newTestArticleService(t)
	ctx := context.Background()

	a := mustCreateArticle(t, svc, "gone", 1, 0)
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestArticleService_Editor(t *testing.T) {
	svc := newTestArticleService(t)
	ctx := context.Background()

	a := mustCreateArticle(t, svc, "edit me", 2, 1)
	editor, err := svc.Editor(ctx, &a.ID)
	if err != nil {
		t.Fatalf("Editor: %v", err)
	}
	if !editor.IsEdit || editor.Title != "edit me" || editor.PageID != 2 {
		t.Fatalf("unexpected editor: %+v", editor)
	}

	missing := int64(500)
	blank, err := svc.Editor(ctx, &missing)
	if err != nil {
		t.Fatalf("Editor(missing): %v", err)
	}
	if blank.IsEdit || blank.Title != "" {
		t.Fatalf("expected blank form, got %+v", blank)
	}
}
