package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/export"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ExportPDFHandler renders the current graph to a single-page PDF and
// serves it as a download.
func ExportPDFHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	nodes, _ := app.Graph.Graph()

	var buf bytes.Buffer
	err := export.ToPDF(c.Request().Context(), app.Canvas, nodes, &buf)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "The graph is empty"})
		}
		logger.Error("[Export] failed", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Export failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.Filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
