package handlers

import (
	"strconv"
	"time"

	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// fail translate a usecase error into the wire shape
func fail(c *fiber.Ctx, err error) error {
	e := errprocess.From(err)
	return c.Status(e.Status).JSON(fiber.Map{"error": e.Message})
}

// HealthCheck check service status
// @Summary Check service status
// @Description Returns service liveness with the current server time
// @Tags Shared
// @Success 200 {object} string "service is up"
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	status, err := strconv.ParseBool(c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status value"})
	}

	logger.Log.SetDebugMode(status)
	logger.Log.Info("debug mode updated", zap.Bool("status", status))
	return c.JSON(fiber.Map{"debug": status})
}

// NotFoundHandler terminal handler for unmatched paths
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Not Found",
		"path":  c.OriginalURL(),
	})
}
