package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/graph"

	"github.com/labstack/echo/v4"
)

// EditNodeHandler applies a partial update to a node. Fields absent
// from the body are left unchanged.
func EditNodeHandler(c echo.Context) error {
	type editNodeRequest struct {
		ID string `param:"id" validate:"required"`
		graph.NodePatch
	}

	type editNodeResponse struct {
		Message string       `json:"message"`
		Node    *common.Node `json:"node,omitempty"`
	}

	data := new(editNodeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editNodeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editNodeResponse{
			Message: "Invalid request body",
		})
	}
	if data.Label != nil && *data.Label == "" {
		return c.JSON(http.StatusBadRequest, editNodeResponse{
			Message: "Node label must not be empty",
		})
	}

	app := c.(*middleware.AppContext).App
	node, ok := app.Graph.UpdateNode(data.ID, data.NodePatch)
	if !ok {
		return c.JSON(http.StatusNotFound, editNodeResponse{
			Message: "Node not found",
		})
	}

	return c.JSON(http.StatusOK, editNodeResponse{
		Message: "Node updated",
		Node:    &node,
	})
}
