// Package httpx holds the fiber plumbing every view shares: the error
// handler, path/query parsing and the failure notifications.
package httpx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"apgbuilders/internal/logger"
	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrorHandler renders every error as {"error": message}. Anything that
// is not a *fiber.Error is logged and hidden behind a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	logger.Log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Unexpected server error",
	})
}

// NotFoundHandler is the catch-all for unknown routes.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Route %s %s not found", c.Method(), c.Path()))
	}
}

// ReadFailed logs a failed fetch and returns the notification shown to
// the user.
func ReadFailed(err error, what string) error {
	logger.Log.Error().Err(err).Msgf("error fetching %s", what)
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+what)
}

// WriteFailed logs a failed insert/update/delete.
func WriteFailed(err error, action, what string) error {
	logger.Log.Error().Err(err).Msgf("error %s %s", action, what)
	return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", action, what))
}

// LookupFailed turns store.ErrNotFound into a 404 and anything else into
// a read failure.
func LookupFailed(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, capitalize(what)+" not found")
	}
	return ReadFailed(err, what)
}

// ReferenceFailed is LookupFailed for ids submitted in a form: a
// dangling reference is the caller's mistake.
func ReferenceFailed(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return BadRequest("%s does not exist", what)
	}
	return ReadFailed(err, what)
}

func BadRequest(format string, args ...any) error {
	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(format, args...))
}

// ParseID reads a UUID path parameter.
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, BadRequest("%s is not a valid id", name)
	}
	return id, nil
}

// QueryID reads an optional UUID query parameter.
func QueryID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, BadRequest("%s is not a valid id", key)
	}
	return &id, nil
}

// RequireID parses a required UUID body field.
func RequireID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, BadRequest("%s is required", field)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, BadRequest("%s is not a valid id", field)
	}
	return id, nil
}

// ParseDate parses a "YYYY-MM-DD" body field. An empty value yields def.
func ParseDate(s, field string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, BadRequest("%s must be formatted as YYYY-MM-DD", field)
	}
	return d, nil
}

// ParseOptionalDate is ParseDate for nullable columns.
func ParseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s, field, time.Time{})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate renders a nullable date, nil staying nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(models.DateLayout)
	return &s
}

// Today is the default for date fields left blank.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// RequireAmount rejects missing or negative amounts.
func RequireAmount(d *decimal.Decimal, field string) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, BadRequest("%s is required", field)
	}
	if d.IsNegative() {
		return decimal.Zero, BadRequest("%s must not be negative", field)
	}
	return *d, nil
}

// OptionalAmount maps a nullable money field, rejecting negatives.
func OptionalAmount(d *decimal.Decimal, field string) (decimal.NullDecimal, error) {
	if d == nil {
		return decimal.NullDecimal{}, nil
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, BadRequest("%s must not be negative", field)
	}
	return decimal.NewNullDecimal(*d), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
