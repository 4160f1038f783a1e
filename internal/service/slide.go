package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/msomdec/rms-content/internal/domain"
)

// Keys accepted in a slide update. FieldID is the locator and is always
// required; FieldSlideID requests a re-key.
const (
	FieldID        = "id"
	FieldSlideID   = "slideid"
	FieldCaption   = "caption"
	FieldIndex     = "index"
	FieldImageName = "image_name"
)

var slideUpdateFields = []string{FieldID, FieldSlideID, FieldCaption, FieldIndex, FieldImageName}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Upload is an image received from a client.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SlideService is the only writer of slide rows and slide image files. It
// keeps every slide paired with exactly one existing image that no other
// slide references.
type SlideService struct {
	slides       domain.SlideRepository
	assets       domain.AssetStore
	logger       *slog.Logger
	maxImageSize int64
}

// NewSlideService creates a new SlideService.
func NewSlideService(slides domain.SlideRepository, assets domain.AssetStore, logger *slog.Logger, maxImageSize int64) *SlideService {
	return &SlideService{
		slides:       slides,
		assets:       assets,
		logger:       logger.With("system", "slides"),
		maxImageSize: maxImageSize,
	}
}

// List returns all slides ordered by index.
func (s *SlideService) List(ctx context.Context) ([]domain.Slide, error) {
	return s.slides.List(ctx)
}

func (s *SlideService) GetByID(ctx context.Context, id int64) (*domain.Slide, error) {
	return s.slides.GetByID(ctx, id)
}

func (s *SlideService) GetByImageName(ctx context.Context, name string) (*domain.Slide, error) {
	return s.slides.GetByImageName(ctx, name)
}

// Create stores the uploaded image and inserts the slide row that owns it.
// An unreferenced file already carrying the name is replaced.
func (s *SlideService) Create(ctx context.Context, caption string, index int, img Upload) (*domain.Slide, error) {
	if caption == "" {
		return nil, fmt.Errorf("%w: caption is required", domain.ErrInvalidInput)
	}
	if !domain.ValidSlideIndex(index) {
		return nil, errSlideIndex
	}
	if err := s.validateImage(img); err != nil {
		return nil, err
	}
	if err := s.ensureUnowned(ctx, img.Name); err != nil {
		return nil, err
	}

	if err := s.storeImage(ctx, img); err != nil {
		return nil, err
	}

	slide := &domain.Slide{Caption: caption, Index: index, ImageName: img.Name}
	if err := s.slides.Create(ctx, slide); err != nil {
		// A name collision means a concurrent create won the row, and the
		// file now belongs to that slide.
		if !errors.Is(err, domain.ErrDuplicateAsset) {
			s.removeBestEffort(ctx, img.Name, "create rollback")
		}
		return nil, fmt.Errorf("create slide: %w", err)
	}

	s.logger.Info("slide created", "id", slide.ID, "image", slide.ImageName)
	return slide, nil
}

// UploadImage stores a replacement image ahead of an update that switches a
// slide to it. The name must not belong to any slide.
func (s *SlideService) UploadImage(ctx context.Context, img Upload) error {
	if err := s.validateImage(img); err != nil {
		return err
	}
	if err := s.ensureUnowned(ctx, img.Name); err != nil {
		return err
	}
	return s.storeImage(ctx, img)
}

// Update applies a partial update. fields must carry the locator FieldID and
// may carry any of FieldSlideID, FieldCaption, FieldIndex and FieldImageName.
// Every field is validated before anything is written. When the image changes,
// the superseded file is removed after the row is updated.
func (s *SlideService) Update(ctx context.Context, fields map[string]string) (*domain.Slide, error) {
	locator, ok := fields[FieldID]
	if !ok {
		return nil, fmt.Errorf("%w: id field missing in update", domain.ErrInvalidInput)
	}
	id, err := parseID(locator)
	if err != nil {
		return nil, err
	}
	if err := checkFields(fields, slideUpdateFields, "slide"); err != nil {
		return nil, err
	}

	current, err := s.slides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: slide ID %d does not exist", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get slide: %w", err)
	}

	var patch domain.SlidePatch
	updated := *current

	// A blank slideid, as submitted by the edit form, keeps the current id.
	if v, ok := fields[FieldSlideID]; ok && v != "" {
		newID, err := parseID(v)
		if err != nil {
			return nil, err
		}
		if newID != current.ID {
			if _, err := s.slides.GetByID(ctx, newID); err == nil {
				return nil, fmt.Errorf("%w: slide ID %d already exists", domain.ErrDuplicateID, newID)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("check slide id: %w", err)
			}
			patch.ID = &newID
			updated.ID = newID
		}
	}

	if v, ok := fields[FieldCaption]; ok {
		patch.Caption = &v
		updated.Caption = v
	}

	if v, ok := fields[FieldIndex]; ok {
		index, err := ParseSlideIndex(v)
		if err != nil {
			return nil, err
		}
		patch.Index = &index
		updated.Index = index
	}

	var superseded string
	if v, ok := fields[FieldImageName]; ok {
		if err := domain.ValidateAssetName(v); err != nil {
			return nil, err
		}
		if v != current.ImageName {
			if err := s.ensureUnowned(ctx, v); err != nil {
				return nil, err
			}
		}
		exists, err := s.assets.Exists(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("check image: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: image %s does not exist on the server, upload it first", domain.ErrAssetMissing, v)
		}
		if v != current.ImageName {
			patch.ImageName = &v
			updated.ImageName = v
			superseded = current.ImageName
		}
	}

	if patch.Empty() {
		return current, nil
	}

	if err := s.slides.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update slide: %w", err)
	}
	if superseded != "" {
		s.removeBestEffort(ctx, superseded, "superseded image")
	}

	s.logger.Info("slide updated", "id", id, "new_id", updated.ID)
	return &updated, nil
}

// Delete removes the slide row and then its image. A failure to remove the
// file leaves an orphan, which is logged but not reported.
func (s *SlideService) Delete(ctx context.Context, id int64) error {
	slide, err := s.slides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: slide ID %d does not exist", domain.ErrNotFound, id)
		}
		return fmt.Errorf("get slide: %w", err)
	}

	if err := s.slides.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	s.removeBestEffort(ctx, slide.ImageName, "deleted slide")

	s.logger.Info("slide deleted", "id", id, "image", slide.ImageName)
	return nil
}

func (s *SlideService) validateImage(img Upload) error {
	if err := domain.ValidateAssetName(img.Name); err != nil {
		return err
	}
	if len(img.Data) == 0 {
		return fmt.Errorf("%w: image is empty", domain.ErrInvalidInput)
	}
	if s.maxImageSize > 0 && int64(len(img.Data)) > s.maxImageSize {
		return fmt.Errorf("%w: image exceeds the %d byte limit", domain.ErrInvalidInput, s.maxImageSize)
	}
	if !slices.Contains(allowedImageTypes, img.ContentType) {
		return fmt.Errorf("%w: only JPEG, PNG, GIF and WebP images are accepted", domain.ErrInvalidInput)
	}
	return nil
}

// ensureUnowned returns ErrDuplicateAsset if a slide references name.
func (s *SlideService) ensureUnowned(ctx context.Context, name string) error {
	owner, err := s.slides.GetByImageName(ctx, name)
	if err == nil {
		return fmt.Errorf("%w: slide %d already uses image %s", domain.ErrDuplicateAsset, owner.ID, name)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check image owner: %w", err)
	}
	return nil
}

func (s *SlideService) storeImage(ctx context.Context, img Upload) error {
	exists, err := s.assets.Exists(ctx, img.Name)
	if err != nil {
		return fmt.Errorf("check image: %w", err)
	}
	if exists {
		s.logger.Info("replacing orphaned image", "image", img.Name)
	}
	if err := s.assets.Store(ctx, img.Name, img.Data); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return nil
}

func (s *SlideService) removeBestEffort(ctx context.Context, name, reason string) {
	if err := s.assets.Remove(ctx, name); err != nil {
		s.logger.Warn("image left orphaned", "image", name, "reason", reason, "error", err)
	}
}

var errSlideIndex = fmt.Errorf("%w: index must be between 0 and %d", domain.ErrInvalidInput, domain.SlideIndexSlots-1)

// ParseSlideIndex parses a submitted slide index. Non-numeric and
// out-of-range values are rejected with the same error.
func ParseSlideIndex(v string) (int, error) {
	index, err := strconv.Atoi(v)
	if err != nil || !domain.ValidSlideIndex(index) {
		return 0, errSlideIndex
	}
	return index, nil
}

func parseID(v string) (int64, error) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", domain.ErrInvalidInput, v)
	}
	return id, nil
}

// checkFields rejects the first key, in sorted order, that is not allowed.
func checkFields(fields map[string]string, allowed []string, entity string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("%w: %q is not a %s field", domain.ErrUnknownField, k, entity)
		}
	}
	return nil
}
