package domain

import (
	"context"
	"fmt"
	"strings"
)

// SlideIndexSlots is the number of display positions in the slideshow.
// A slide index must fall in [0, SlideIndexSlots).
const SlideIndexSlots = 15

// Slide pairs a caption and display position with an image file that it
// exclusively owns in the asset directory.
type Slide struct {
	ID        int64  `json:"id"`
	Index     int    `json:"index"`
	Caption   string `json:"caption"`
	ImageName string `json:"image_name"`
}

// SlidePatch is a validated set of column changes. Nil fields are left as is.
type SlidePatch struct {
	ID        *int64
	Caption   *string
	Index     *int
	ImageName *string
}

// Empty reports whether the patch changes nothing.
func (p SlidePatch) Empty() bool {
	return p.ID == nil && p.Caption == nil && p.Index == nil && p.ImageName == nil
}

// SlideRepository handles slide row persistence. It performs no validation
// beyond what the schema enforces; callers validate patches first.
type SlideRepository interface {
	// List returns all slides ordered by index. No rows yields an empty slice.
	List(ctx context.Context) ([]Slide, error)
	GetByID(ctx context.Context, id int64) (*Slide, error)
	GetByImageName(ctx context.Context, name string) (*Slide, error)
	Create(ctx context.Context, slide *Slide) error
	Update(ctx context.Context, id int64, patch SlidePatch) error
	Delete(ctx context.Context, id int64) error
}

// ValidSlideIndex reports whether index addresses a slideshow slot.
func ValidSlideIndex(index int) bool {
	return index >= 0 && index < SlideIndexSlots
}

// ValidateAssetName rejects anything other than a bare file name so that
// asset names can never address a path outside the asset directory.
func ValidateAssetName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: image name is required", ErrInvalidInput)
	case len(name) > 255:
		return fmt.Errorf("%w: image name must be 255 bytes or fewer", ErrInvalidInput)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: image name %q must not contain path separators", ErrInvalidInput, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: image name %q must not start with a dot", ErrInvalidInput, name)
	}
	return nil
}
