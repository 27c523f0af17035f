package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateNodeHandler inserts a node into the graph. The node is placed
// near the center of the current viewport.
func CreateNodeHandler(c echo.Context) error {
	type createNodeRequest struct {
		Type        string `json:"type"`
		Label       string `json:"label" validate:"required"`
		Subtitle    string `json:"subtitle"`
		ImageURL    string `json:"imageUrl"`
		Description string `json:"description"`
	}

	type createNodeResponse struct {
		Message string       `json:"message"`
		Node    *common.Node `json:"node,omitempty"`
	}

	data := new(createNodeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createNodeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createNodeResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	node, err := app.Graph.AddNode(common.Node{
		Type:        common.NodeType(data.Type),
		Label:       data.Label,
		Subtitle:    data.Subtitle,
		ImageURL:    data.ImageURL,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create node", "err", err)
		return c.JSON(http.StatusBadRequest, createNodeResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, createNodeResponse{
		Message: "Node created",
		Node:    &node,
	})
}
