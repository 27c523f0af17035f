package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/layout"

	"github.com/labstack/echo/v4"
)

// ApplyLayoutHandler runs the layered layout over the graph. The
// direction defaults to vertical.
func ApplyLayoutHandler(c echo.Context) error {
	type layoutRequest struct {
		Direction string `json:"direction" validate:"omitempty,oneof=vertical horizontal"`
	}

	type layoutResponse struct {
		Message string        `json:"message"`
		Nodes   []common.Node `json:"nodes,omitempty"`
	}

	data := new(layoutRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, layoutResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, layoutResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	nodes := app.Graph.ApplyLayout(layout.NewLayered(layout.Direction(data.Direction)))

	return c.JSON(http.StatusOK, layoutResponse{
		Message: "Layout applied",
		Nodes:   nodes,
	})
}
