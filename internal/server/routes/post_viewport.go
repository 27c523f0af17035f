package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"

	"github.com/labstack/echo/v4"
)

// SetViewportHandler records the client's visible canvas region, which
// anchors the insert position of manually created nodes.
func SetViewportHandler(c echo.Context) error {
	type viewportRequest struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width" validate:"required,gt=0"`
		Height float64 `json:"height" validate:"required,gt=0"`
	}

	data := new(viewportRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	app := c.(*middleware.AppContext).App
	app.Graph.SetViewport(geometry.Rect{X: data.X, Y: data.Y, Width: data.Width, Height: data.Height})
	return c.JSON(http.StatusOK, map[string]string{"message": "Viewport updated"})
}
