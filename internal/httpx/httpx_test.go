package httpx_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"apgbuilders/internal/httpx"
	"apgbuilders/internal/httpx/httpxtest"
	"apgbuilders/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := httpxtest.NewApp()
	app.Get("/bad", func(c *fiber.Ctx) error { return httpx.BadRequest("amount must not be negative") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("connection reset") })
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})
	app.Use(httpx.NotFoundHandler())

	status, body := httpxtest.Do(t, app, fiber.MethodGet, "/bad", nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "amount must not be negative", httpxtest.Error(t, body))

	status, body = httpxtest.Do(t, app, fiber.MethodGet, "/boom", nil)
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "Unexpected server error", httpxtest.Error(t, body))

	status, body = httpxtest.Do(t, app, fiber.MethodGet, "/items/not-a-uuid", nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "id is not a valid id", httpxtest.Error(t, body))

	id := uuid.New()
	status, body = httpxtest.Do(t, app, fiber.MethodGet, "/items/"+id.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, id.String(), string(body))

	status, body = httpxtest.Do(t, app, fiber.MethodGet, "/nowhere", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Route GET /nowhere not found", httpxtest.Error(t, body))
}

func TestLookupFailed(t *testing.T) {
	var fe *fiber.Error

	err := httpx.LookupFailed(fmt.Errorf("site x: %w", store.ErrNotFound), "site")
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
	require.Equal(t, "Site not found", fe.Message)

	err = httpx.LookupFailed(errors.New("db down"), "site")
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusInternalServerError, fe.Code)
	require.Equal(t, "Failed to fetch site", fe.Message)

	err = httpx.ReferenceFailed(fmt.Errorf("vendor x: %w", store.ErrNotFound), "vendor")
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestParseDate(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	d, err := httpx.ParseDate("", "expense_date", def)
	require.NoError(t, err)
	require.Equal(t, def, d)

	d, err = httpx.ParseDate("2025-03-01", "expense_date", def)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = httpx.ParseDate("01/03/2025", "expense_date", def)
	require.Error(t, err)

	opt, err := httpx.ParseOptionalDate("", "start_date")
	require.NoError(t, err)
	require.Nil(t, opt)
	require.Nil(t, httpx.FormatDate(nil))

	opt, err = httpx.ParseOptionalDate("2025-02-14", "start_date")
	require.NoError(t, err)
	require.Equal(t, "2025-02-14", *httpx.FormatDate(opt))
}

func TestAmounts(t *testing.T) {
	_, err := httpx.RequireAmount(nil, "amount")
	require.Error(t, err)

	neg := decimal.NewFromInt(-1)
	_, err = httpx.RequireAmount(&neg, "amount")
	require.Error(t, err)

	zero := decimal.Zero
	got, err := httpx.RequireAmount(&zero, "amount")
	require.NoError(t, err)
	require.True(t, got.IsZero())

	nd, err := httpx.OptionalAmount(nil, "budget")
	require.NoError(t, err)
	require.False(t, nd.Valid)

	_, err = httpx.OptionalAmount(&neg, "budget")
	require.Error(t, err)

	budget := decimal.RequireFromString("250000.50")
	nd, err = httpx.OptionalAmount(&budget, "budget")
	require.NoError(t, err)
	require.True(t, nd.Valid)
	require.True(t, budget.Equal(nd.Decimal))
}
