package domain

import "errors"

// Sentinel errors are wrapped with detail, e.g.
// fmt.Errorf("%w: image arm.png belongs to slide 4", ErrDuplicateAsset).
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateAsset    = errors.New("duplicate image")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrAssetMissing      = errors.New("missing image")
	ErrUnknownField      = errors.New("too many fields given")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
)
