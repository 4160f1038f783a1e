package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/logging"
	"github.com/msomdec/rms-content/internal/service"
	"github.com/msomdec/rms-content/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	slideFileField     = "img"
	multipartOverhead  = 1 << 20
	multipartMemoryCap = 32 << 20
)

var slideCreateFields = []string{service.FieldCaption, service.FieldIndex}

// SlideHandler serves the slide API, the slideshow stream, and slide images.
type SlideHandler struct {
	slides        *service.SlideService
	assets        domain.AssetStore
	maxUploadSize int64
}

// NewSlideHandler creates a new SlideHandler.
func NewSlideHandler(slides *service.SlideService, assets domain.AssetStore, maxUploadSize int64) *SlideHandler {
	return &SlideHandler{slides: slides, assets: assets, maxUploadSize: maxUploadSize}
}

// HandleGet dispatches on the query string.
// GET /api/content/slides
// GET /api/content/slides?id=N
// GET /api/content/slides?img=name
// GET /api/content/slides?request=editor[&id=N]
func (h *SlideHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch {
	case len(q) == 0:
		slides, err := h.slides.List(r.Context())
		if err != nil {
			respondError(w, r, "list slides", err)
			return
		}
		if len(slides) == 0 {
			writeError(w, http.StatusNotFound, "No slides found.")
			return
		}
		writeJSON(w, http.StatusOK, slides)

	case len(q) == 1 && q.Has("id"):
		raw := q.Get("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Slide ID %q is invalid.", raw))
			return
		}
		slide, err := h.slides.GetByID(r.Context(), id)
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Slide ID %q is invalid.", raw))
			return
		}
		if err != nil {
			respondError(w, r, "get slide", err)
			return
		}
		writeJSON(w, http.StatusOK, slide)

	case len(q) == 1 && q.Has("img"):
		name := q.Get("img")
		slide, err := h.slides.GetByImageName(r.Context(), name)
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Slide image %q is invalid.", name))
			return
		}
		if err != nil {
			respondError(w, r, "get slide by image", err)
			return
		}
		writeJSON(w, http.StatusOK, slide)

	case q.Has("request"):
		switch request := q.Get("request"); request {
		case "editor":
			if !requireAdminInline(w, r, "get a slide editor") {
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

func (h *SlideHandler) handleEditor(w http.ResponseWriter, r *http.Request, q url.Values) {
	var id *int64
	switch {
	case len(q) == 1:
	case len(q) == 2 && q.Has("id"):
		// An unparsable id falls back to the create form like an unknown one.
		if parsed, err := strconv.ParseInt(q.Get("id"), 10, 64); err == nil {
			id = &parsed
		}
	default:
		writeError(w, http.StatusNotFound, "Too many fields provided.")
		return
	}

	editor, err := h.slides.Editor(r.Context(), id)
	if err != nil {
		respondError(w, r, "build slide editor", err)
		return
	}
	html, err := view.RenderString(r.Context(), view.SlideEditor(editor))
	if err != nil {
		respondError(w, r, "render slide editor", err)
		return
	}
	writeJSON(w, http.StatusOK, html)
}

// HandleCreate creates a slide from a multipart upload carrying exactly the
// caption and index fields plus the img file.
// POST /api/content/slides
func (h *SlideHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseMultipart(w, r)
	if !ok {
		return
	}

	if len(form.Value) != len(slideCreateFields) || !hasKeys(form.Value, slideCreateFields) || len(form.File[slideFileField]) == 0 {
		writeError(w, http.StatusNotFound, "Slide fields must be exactly caption, index and an img file.")
		return
	}

	index, err := service.ParseSlideIndex(form.Value[service.FieldIndex][0])
	if err != nil {
		respondError(w, r, "create slide", err)
		return
	}

	upload, err := h.readUpload(form.File[slideFileField][0])
	if err != nil {
		respondError(w, r, "read slide upload", err)
		return
	}

	slide, err := h.slides.Create(r.Context(), form.Value[service.FieldCaption][0], index, upload)
	if err != nil {
		respondError(w, r, "create slide", err)
		return
	}
	writeJSON(w, http.StatusOK, slide)
}

// HandleUploadImage stores a replacement image that a later update can
// switch a slide to.
// POST /api/content/slides/images
func (h *SlideHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseMultipart(w, r)
	if !ok {
		return
	}
	if len(form.File[slideFileField]) == 0 {
		writeError(w, http.StatusNotFound, "No img file provided.")
		return
	}

	upload, err := h.readUpload(form.File[slideFileField][0])
	if err != nil {
		respondError(w, r, "read slide upload", err)
		return
	}
	if err := h.slides.UploadImage(r.Context(), upload); err != nil {
		respondError(w, r, "upload slide image", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_name": upload.Name})
}

// HandleUpdate applies a form-encoded partial update.
// PUT /api/content/slides
func (h *SlideHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, ok := parseFormFields(w, r)
	if !ok {
		return
	}

	slide, err := h.slides.Update(r.Context(), fields)
	if err != nil {
		respondError(w, r, "update slide", err)
		return
	}
	writeJSON(w, http.StatusOK, slide)
}

// HandleDelete removes a slide and its image.
// DELETE /api/content/slides?id=N
func (h *SlideHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if len(q) != 1 || !q.Has("id") {
		writeError(w, http.StatusNotFound, "Unknown request.")
		return
	}

	raw := q.Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Slide ID %q is invalid.", raw))
		return
	}
	if err := h.slides.Delete(r.Context(), id); err != nil {
		respondError(w, r, "delete slide", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// HandleSlideshow patches the ordered slideshow into the #slides element.
// GET /api/content/slides/slideshow
func (h *SlideHandler) HandleSlideshow(w http.ResponseWriter, r *http.Request) {
	slides, err := h.slides.List(r.Context())
	if err != nil {
		respondError(w, r, "list slides", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.Slideshow(slides),
		datastar.WithSelectorID("slides"),
		datastar.WithModeInner(),
	); err != nil {
		logging.FromContext(r.Context()).Warn("patch slideshow", "error", err)
	}
}

// HandleImage serves a stored slide image.
// GET /img/slides/{name}
func (h *SlideHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	exists, err := h.assets.Exists(r.Context(), name)
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		logging.FromContext(r.Context()).Error("check slide image", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.NotFound(w, r)
		return
	}

	path, err := h.assets.Path(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	// The type comes from the stored bytes, not the file name.
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logging.FromContext(r.Context()).Error("rewind slide image", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(head[:n]))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (h *SlideHandler) parseMultipart(w http.ResponseWriter, r *http.Request) (*multipart.Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemoryCap); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusNotFound, "Image is too large.")
			return nil, false
		}
		writeError(w, http.StatusNotFound, "Invalid multipart request.")
		return nil, false
	}
	return r.MultipartForm, true
}

// readUpload reads the file and sniffs its content type rather than
// trusting the client's header.
func (h *SlideHandler) readUpload(fh *multipart.FileHeader) (service.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		return service.Upload{}, fmt.Errorf("read upload: %w", err)
	}
	return service.Upload{
		Name:        fh.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// parseFormFields flattens a form-encoded body into single values. A key
// given more than once is rejected.
func parseFormFields(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusNotFound, "Invalid form body.")
		return nil, false
	}

	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) != 1 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Field %q was given more than once.", key))
			return nil, false
		}
		fields[key] = values[0]
	}
	return fields, true
}

func hasKeys(values map[string][]string, keys []string) bool {
	for _, k := range keys {
		if v, ok := values[k]; !ok || len(v) != 1 {
			return false
		}
	}
	return true
}
