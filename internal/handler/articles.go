package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/logging"
	"github.com/msomdec/rms-content/internal/service"
	"github.com/msomdec/rms-content/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

var articleCreateFields = []string{service.FieldTitle, service.FieldContent, service.FieldPageID, service.FieldIndex}

// ArticleHandler serves the content article API.
type ArticleHandler struct {
	articles *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// HandleGet dispatches on the query string.
// GET /api/content/articles
// GET /api/content/articles?id=N
// GET /api/content/articles?pageid=N
// GET /api/content/articles?request=editor[&id=N]
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch {
	case len(q) == 0:
		articles, err := h.articles.List(r.Context())
		if err != nil {
			respondError(w, r, "list articles", err)
			return
		}
		if len(articles) == 0 {
			writeError(w, http.StatusNotFound, "No content articles found.")
			return
		}
		writeJSON(w, http.StatusOK, articles)

	case len(q) == 1 && q.Has("id"):
		raw := q.Get("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Article ID %q is invalid.", raw))
			return
		}
		article, err := h.articles.GetByID(r.Context(), id)
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Article ID %q is invalid.", raw))
			return
		}
		if err != nil {
			respondError(w, r, "get article", err)
			return
		}
		writeJSON(w, http.StatusOK, article)

	case len(q) == 1 && q.Has(service.FieldPageID):
		raw := q.Get(service.FieldPageID)
		notFound := fmt.Sprintf("No articles with content page ID %q found.", raw)
		pageID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, notFound)
			return
		}
		articles, err := h.articles.ListByPage(r.Context(), pageID)
		if err != nil {
			respondError(w, r, "list page articles", err)
			return
		}
		if len(articles) == 0 {
			writeError(w, http.StatusNotFound, notFound)
			return
		}
		writeJSON(w, http.StatusOK, articles)

	case q.Has("request"):
		switch request := q.Get("request"); request {
		case "editor":
			if !requireAdminInline(w, r, "get an article editor") {
				return
			}
			h.handleEditor(w, r, q)
		default:
			writeError(w, http.StatusNotFound, request+" request type is invalid.")
		}

	default:
		writeError(w, http.StatusNotFound, "Unknown request.")
	}
}

func (h *ArticleHandler) handleEditor(w http.ResponseWriter, r *http.Request, q url.Values) {
	var id *int64
	switch {
	case len(q) == 1:
	case len(q) == 2 && q.Has("id"):
		if parsed, err := strconv.ParseInt(q.Get("id"), 10, 64); err == nil {
			id = &parsed
		}
	default:
		writeError(w, http.StatusNotFound, "Too many fields provided.")
		return
	}

	editor, err := h.articles.Editor(r.Context(), id)
	if err != nil {
		respondError(w, r, "build article editor", err)
		return
	}
	html, err := view.RenderString(r.Context(), view.ArticleEditor(editor))
	if err != nil {
		respondError(w, r, "render article editor", err)
		return
	}
	writeJSON(w, http.StatusOK, html)
}

// HandleCreate creates an article from a form body carrying exactly title,
// content, pageid and index.
// POST /api/content/articles
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields, ok := parseFormFields(w, r)
	if !ok {
		return
	}
	if len(fields) != len(articleCreateFields) {
		writeError(w, http.StatusNotFound, "Article fields must be exactly title, content, pageid and index.")
		return
	}
	for _, key := range articleCreateFields {
		if _, ok := fields[key]; !ok {
			writeError(w, http.StatusNotFound, "Article fields must be exactly title, content, pageid and index.")
			return
		}
	}

	pageID, err := strconv.ParseInt(fields[service.FieldPageID], 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Content page ID %q is invalid.", fields[service.FieldPageID]))
		return
	}
	index, err := strconv.Atoi(fields[service.FieldIndex])
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Article index %q is invalid.", fields[service.FieldIndex]))
		return
	}

	article := &domain.Article{
		Title:   fields[service.FieldTitle],
		Content: fields[service.FieldContent],
		PageID:  pageID,
		Index:   index,
	}
	if err := h.articles.Create(r.Context(), article); err != nil {
		respondError(w, r, "create article", err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleUpdate applies a form-encoded partial update.
// PUT /api/content/articles
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, ok := parseFormFields(w, r)
	if !ok {
		return
	}

	article, err := h.articles.Update(r.Context(), fields)
	if err != nil {
		respondError(w, r, "update article", err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleDelete removes an article.
// DELETE /api/content/articles?id=N
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if len(q) != 1 || !q.Has("id") {
		writeError(w, http.StatusNotFound, "Unknown request.")
		return
	}

	raw := q.Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Article ID %q is invalid.", raw))
		return
	}
	if err := h.articles.Delete(r.Context(), id); err != nil {
		respondError(w, r, "delete article", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// HandlePage patches a content page's articles, rendered from Markdown, into
// the #articles element.
// GET /api/content/articles/page/{pageid}
func (h *ArticleHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("pageid")
	pageID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || pageID <= 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Content page ID %q is invalid.", raw))
		return
	}

	articles, err := h.articles.ListByPage(r.Context(), pageID)
	if err != nil {
		respondError(w, r, "list page articles", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.ContentPage(articles),
		datastar.WithSelectorID("articles"),
		datastar.WithModeInner(),
	); err != nil {
		logging.FromContext(r.Context()).Warn("patch content page", "page_id", pageID, "error", err)
	}
}
