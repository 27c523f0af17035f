package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// SetSelectionHandler selects a node or an edge. Selecting one kind
// clears the other; empty IDs clear the selection entirely.
func SetSelectionHandler(c echo.Context) error {
	type selectionRequest struct {
		NodeID string `json:"nodeId"`
		EdgeID string `json:"edgeId"`
	}

	data := new(selectionRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	app := c.(*middleware.AppContext).App
	switch {
	case data.NodeID != "":
		app.Graph.SelectNode(data.NodeID)
	case data.EdgeID != "":
		app.Graph.SelectEdge(data.EdgeID)
	default:
		app.Graph.SelectNode("")
		app.Graph.SelectEdge("")
	}

	return c.JSON(http.StatusOK, app.Graph.Snapshot())
}
