// Package store provides GORM-backed persistence for categories, products,
// blog posts and inquiries.
package store

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Store wraps a *gorm.DB. It holds no other state and is safe for concurrent use.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lower-cases s, escapes LIKE metacharacters and wraps it in
// %...% for use with `LOWER(col) LIKE ? ESCAPE '\'`.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// likeAny builds "LOWER(col) LIKE ? ESCAPE '\' OR ..." for each column.
func likeAny(columns ...string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
	}
	return strings.Join(parts, " OR ")
}

// ListOptions holds pagination. Zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) apply(q *gorm.DB) *gorm.DB {
	if o.Offset > 0 {
		q = q.Offset(o.Offset)
	}
	if o.Limit > 0 {
		q = q.Limit(o.Limit)
	}
	return q
}
