package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/graph"

	"github.com/labstack/echo/v4"
)

// EditEdgeHandler applies a partial update to an edge.
func EditEdgeHandler(c echo.Context) error {
	type editEdgeRequest struct {
		ID string `param:"id" validate:"required"`
		graph.EdgePatch
	}

	type editEdgeResponse struct {
		Message string       `json:"message"`
		Edge    *common.Edge `json:"edge,omitempty"`
	}

	data := new(editEdgeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editEdgeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editEdgeResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	edge, ok := app.Graph.UpdateEdge(data.ID, data.EdgePatch)
	if !ok {
		return c.JSON(http.StatusNotFound, editEdgeResponse{
			Message: "Edge not found",
		})
	}

	return c.JSON(http.StatusOK, editEdgeResponse{
		Message: "Edge updated",
		Edge:    &edge,
	})
}
