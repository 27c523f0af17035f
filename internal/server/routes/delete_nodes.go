package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteNodeHandler removes a node and every edge attached to it.
func DeleteNodeHandler(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing node ID"})
	}

	app := c.(*middleware.AppContext).App
	if !app.Graph.RemoveNode(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Node not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Node deleted"})
}
