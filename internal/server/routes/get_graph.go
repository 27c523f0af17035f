package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler returns the full session state: nodes, edges, the
// current selection and the status of the last analysis.
func GetGraphHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Graph.Snapshot())
}
