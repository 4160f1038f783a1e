package domain

import "context"

// AssetStore abstracts the directory holding slide images. Names are bare
// file names; the store has no knowledge of slide rows.
type AssetStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	// Store writes data under name, replacing any existing file.
	Store(ctx context.Context, name string, data []byte) error
	// Remove deletes the named file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error
	// Path returns the absolute path of the named file.
	Path(name string) (string, error)
}
