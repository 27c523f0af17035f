package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"

	"github.com/labstack/echo/v4"
)

// GetHighlightsHandler lists all persisted highlights.
func GetHighlightsHandler(c echo.Context) error {
	type highlightsResponse struct {
		Highlights []common.Highlight `json:"highlights"`
	}

	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, highlightsResponse{
		Highlights: app.Highlights.List(),
	})
}
