package server

import (
	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Analysis routes
	apiRoutes.POST("/analyze", routes.AnalyzeTextHandler)
	apiRoutes.POST("/context", routes.GenerateContextHandler)

	// Graph state routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.POST("/selection", routes.SetSelectionHandler)
	apiRoutes.POST("/viewport", routes.SetViewportHandler)
	apiRoutes.POST("/layout", routes.ApplyLayoutHandler)

	// Node routes
	apiRoutes.POST("/nodes", routes.CreateNodeHandler)
	apiRoutes.PATCH("/nodes/:id", routes.EditNodeHandler)
	apiRoutes.DELETE("/nodes/:id", routes.DeleteNodeHandler)

	// Edge routes
	apiRoutes.POST("/edges", routes.CreateEdgeHandler)
	apiRoutes.PATCH("/edges/:id", routes.EditEdgeHandler)
	apiRoutes.DELETE("/edges/:id", routes.DeleteEdgeHandler)

	// Export routes
	apiRoutes.POST("/export", routes.ExportPDFHandler)

	// Highlight routes
	apiRoutes.GET("/highlights", routes.GetHighlightsHandler)
	apiRoutes.POST("/highlights", routes.CreateHighlightHandler)
	apiRoutes.DELETE("/highlights/:id", routes.DeleteHighlightHandler)
	apiRoutes.DELETE("/highlights", routes.ClearHighlightsHandler)
}
