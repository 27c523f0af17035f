package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"

	"github.com/labstack/echo/v4"
)

// CreateEdgeHandler connects two existing nodes. Edges referencing
// unknown nodes are rejected.
func CreateEdgeHandler(c echo.Context) error {
	type createEdgeRequest struct {
		Source string `json:"source" validate:"required"`
		Target string `json:"target" validate:"required"`
		Type   string `json:"type"`
		Label  string `json:"label"`
	}

	type createEdgeResponse struct {
		Message string       `json:"message"`
		Edge    *common.Edge `json:"edge,omitempty"`
	}

	data := new(createEdgeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createEdgeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createEdgeResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	edge, ok := app.Graph.AddEdge(common.Edge{
		Source: data.Source,
		Target: data.Target,
		Type:   common.EdgeType(data.Type),
		Label:  data.Label,
	})
	if !ok {
		return c.JSON(http.StatusBadRequest, createEdgeResponse{
			Message: "Edge endpoints must reference existing nodes",
		})
	}

	return c.JSON(http.StatusOK, createEdgeResponse{
		Message: "Edge created",
		Edge:    &edge,
	})
}
