package audit

import (
	"context"
	"testing"

	"apgbuilders/internal/database/dbtest"
	"apgbuilders/internal/httpx/httpxtest"
	"apgbuilders/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(dbtest.Open(t))

	siteID := uuid.New()
	require.NoError(t, j.WriteLog(ctx, LogOptions{
		EntityType:  "site",
		EntityID:    siteID,
		Action:      models.AuditActionCreate,
		Description: "Site created: Tower A",
		After:       map[string]any{"name": "Tower A"},
	}))
	j.Record(ctx, LogOptions{
		EntityType: "expense",
		EntityID:   uuid.New(),
		Action:     models.AuditActionUpdate,
		Before:     map[string]any{"amount": "100"},
		After:      map[string]any{"amount": "120"},
	})

	t.Run("lists newest first", func(t *testing.T) {
		logs, err := j.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		require.Equal(t, "expense", logs[0].EntityType)
		require.JSONEq(t, `{"amount":"100"}`, logs[0].BeforeData)
	})

	t.Run("filters by entity type", func(t *testing.T) {
		logs, err := j.List(ctx, "site", 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, siteID, logs[0].EntityID)
		require.Equal(t, "null", logs[0].BeforeData)
		require.JSONEq(t, `{"name":"Tower A"}`, logs[0].AfterData)
	})

	t.Run("handler", func(t *testing.T) {
		app := httpxtest.NewApp()
		app.Get("/audit-logs", ListAuditLogsHandler(j))

		var logs []models.AuditLog
		status := httpxtest.DoJSON(t, app, fiber.MethodGet, "/audit-logs?entity_type=expense", nil, &logs)
		require.Equal(t, fiber.StatusOK, status)
		require.Len(t, logs, 1)
		require.Equal(t, models.AuditActionUpdate, logs[0].Action)

		status, body := httpxtest.Do(t, app, fiber.MethodGet, "/audit-logs?limit=0", nil)
		require.Equal(t, fiber.StatusBadRequest, status)
		require.Equal(t, "limit must be between 1 and 1000", httpxtest.Error(t, body))
	})
}
