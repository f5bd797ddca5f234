package audit

import (
	"strconv"

	"apgbuilders/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=expense&limit=50
func ListAuditLogsHandler(j *Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 100
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 1000")
			}
			limit = n
		}

		logs, err := j.List(c.UserContext(), c.Query("entity_type"), limit)
		if err != nil {
			logger.Log.Error().Err(err).Msg("audit logs could not be listed")
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch audit logs")
		}
		return c.JSON(logs)
	}
}
