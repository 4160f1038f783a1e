package service

import (
	"context"
	"errors"

	"github.com/msomdec/rms-content/internal/domain"
)

// IndexChoice is one option of the slideshow position picker.
type IndexChoice struct {
	Value    int
	Selected bool
}

// SlideEditor is the data behind the slide create/edit form.
type SlideEditor struct {
	IsEdit       bool
	ID           int64
	ImageName    string
	Caption      string
	Index        int
	IndexChoices []IndexChoice
}

// Editor builds the slide form. An id that does not resolve yields a blank
// create form rather than an error.
func (s *SlideService) Editor(ctx context.Context, id *int64) (*SlideEditor, error) {
	editor := &SlideEditor{}
	if id != nil {
		slide, err := s.slides.GetByID(ctx, *id)
		switch {
		case err == nil:
			editor.IsEdit = true
			editor.ID = slide.ID
			editor.ImageName = slide.ImageName
			editor.Caption = slide.Caption
			editor.Index = slide.Index
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Debug("editor id not found, building create form", "id", *id)
		default:
			return nil, err
		}
	}

	editor.IndexChoices = make([]IndexChoice, domain.SlideIndexSlots)
	for i := range editor.IndexChoices {
		editor.IndexChoices[i] = IndexChoice{
			Value:    i,
			Selected: editor.IsEdit && i == editor.Index,
		}
	}
	return editor, nil
}

// ArticleEditor is the data behind the article create/edit form.
type ArticleEditor struct {
	IsEdit  bool
	ID      int64
	Title   string
	Content string
	PageID  int64
	Index   int
}

// Editor builds the article form with the same fallback rule as slides.
func (s *ArticleService) Editor(ctx context.Context, id *int64) (*ArticleEditor, error) {
	editor := &ArticleEditor{}
	if id == nil {
		return editor, nil
	}

	article, err := s.articles.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return editor, nil
		}
		return nil, err
	}

	editor.IsEdit = true
	editor.ID = article.ID
	editor.Title = article.Title
	editor.Content = article.Content
	editor.PageID = article.PageID
	editor.Index = article.Index
	return editor, nil
}
