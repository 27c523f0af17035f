package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteEdgeHandler removes an edge from the graph.
func DeleteEdgeHandler(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing edge ID"})
	}

	app := c.(*middleware.AppContext).App
	if !app.Graph.RemoveEdge(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Edge not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Edge deleted"})
}
