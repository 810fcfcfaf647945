package actions

import (
	"errors"
	"log/slog"

	"gyangroup/store"
)

// Kind classifies a failed Result.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindDataAccess Kind = "data_access"
)

// Issue is one violated field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the envelope every action returns. Failures carry a Kind; the
// envelope is never paired with a Go error.
type Result[T any] struct {
	Success bool    `json:"success"`
	Data    T       `json:"data"`
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
	Details []Issue `json:"details,omitempty"`
	Count   *int64  `json:"count,omitempty"`
	Kind    Kind    `json:"-"`
}

func ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func okCount[T any](data T, count int64) Result[T] {
	return Result[T]{Success: true, Data: data, Count: &count}
}

func invalid[T any](issues []Issue) Result[T] {
	return Result[T]{Kind: KindValidation, Error: "Validation failed", Details: issues}
}

func notFound[T any](entity string) Result[T] {
	return Result[T]{Kind: KindNotFound, Error: entity + " not found"}
}

// fromStoreError turns a store failure into a Result. Not-found maps to
// KindNotFound, duplicate keys to a validation failure on field, anything
// else is logged and reported as a data access failure.
func fromStoreError[T any](logger *slog.Logger, op, entity, field string, err error) Result[T] {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound[T](entity)
	case errors.Is(err, store.ErrDuplicate) && field != "":
		return invalid[T]([]Issue{{Field: field, Message: entity + " with this " + field + " already exists"}})
	}
	logger.Error(op+" failed", "error", err)
	return Result[T]{Kind: KindDataAccess, Error: err.Error()}
}

// withData replaces the payload, used to return empty lists on failure.
func withData[T any](r Result[T], data T) Result[T] {
	r.Data = data
	return r
}
