package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches an id or slug.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique column (name, slug) already holds the value.
	ErrDuplicate = errors.New("duplicate value for unique field")

	// ErrForeignKey is returned when a referenced row does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
)

// Error wraps store failures with the operation and entity involved.
type Error struct {
	Op     string // e.g. "UpdateBlog"
	Entity string // e.g. "blog"
	ID     string
	Err    error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap maps gorm errors onto the package sentinels. nil stays nil.
func wrap(op, entity, id string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		err = ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = ErrForeignKey
	}
	return &Error{Op: op, Entity: entity, ID: id, Err: err}
}
