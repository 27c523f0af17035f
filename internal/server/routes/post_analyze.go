package routes

import (
	"errors"
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/graph"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeTextHandler extracts entities and relationships from a piece
// of text and merges them into the graph.
func AnalyzeTextHandler(c echo.Context) error {
	type analyzeRequest struct {
		Text string `json:"text" validate:"required"`
	}

	type analyzeResponse struct {
		Message       string                `json:"message"`
		Entities      []common.Entity       `json:"entities,omitempty"`
		Relationships []common.Relationship `json:"relationships,omitempty"`
		NodesAdded    int                   `json:"nodesAdded,omitempty"`
		EdgesAdded    int                   `json:"edgesAdded,omitempty"`
	}

	data := new(analyzeRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	outcome, err := app.Graph.AnalyzeText(c.Request().Context(), app.AiClient, data.Text)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrEmptyText), errors.Is(err, graph.ErrTextTooLong):
			return c.JSON(http.StatusBadRequest, analyzeResponse{Message: err.Error()})
		case errors.Is(err, graph.ErrAnalyzeInFlight):
			return c.JSON(http.StatusConflict, analyzeResponse{Message: err.Error()})
		case errors.Is(err, graph.ErrContract):
			return c.JSON(http.StatusUnprocessableEntity, analyzeResponse{
				Message: "The analysis response could not be interpreted",
			})
		default:
			logger.Error("[Analyze] extraction failed", "err", err)
			return c.JSON(http.StatusBadGateway, analyzeResponse{
				Message: "Analysis failed",
			})
		}
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		Message:       "Analysis complete",
		Entities:      outcome.Entities,
		Relationships: outcome.Relationships,
		NodesAdded:    outcome.NodesAdded,
		EdgesAdded:    outcome.EdgesAdded,
	})
}
