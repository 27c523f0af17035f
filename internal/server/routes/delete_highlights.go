package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteHighlightHandler removes a single highlight.
func DeleteHighlightHandler(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing highlight ID"})
	}

	app := c.(*middleware.AppContext).App
	removed, err := app.Highlights.Remove(id)
	if err != nil {
		logger.Error("Failed to remove highlight", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Highlight not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Highlight deleted"})
}

// ClearHighlightsHandler removes every highlight.
func ClearHighlightsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	if err := app.Highlights.Clear(); err != nil {
		logger.Error("Failed to clear highlights", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Highlights cleared"})
}
