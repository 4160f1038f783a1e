package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration files and
// exposes the content repositories built on top of it.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
	Slides() SlideRepository
	Articles() ArticleRepository
	Users() UserRepository
}
