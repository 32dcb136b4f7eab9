package domain

import "context"

// Database defines lifecycle operations for the underlying database and
// vends its repositories. Each implementation (SQLite, Postgres) owns its
// own migration files and strategy, so the backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
	Users() UserRepository
	Posts() PostRepository
}
