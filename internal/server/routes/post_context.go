package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GenerateContextHandler produces a short historical context paragraph
// for a node.
func GenerateContextHandler(c echo.Context) error {
	type contextRequest struct {
		Label       string `json:"label" validate:"required"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}

	// Failures are reported under an "error" key; the editor shows it
	// inline next to the node.
	type contextResponse struct {
		Message string `json:"message,omitempty"`
		Context string `json:"context,omitempty"`
		Error   string `json:"error,omitempty"`
	}

	data := new(contextRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, contextResponse{
			Error: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, contextResponse{
			Error: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	prompt := ai.ContextPrompt(data.Label, data.Type, data.Description)
	text, err := app.AiClient.GenerateCompletion(c.Request().Context(), prompt)
	if err != nil {
		logger.Error("[Context] generation failed", "label", data.Label, "err", err)
		return c.JSON(http.StatusBadGateway, contextResponse{
			Error: "Context generation failed",
		})
	}

	return c.JSON(http.StatusOK, contextResponse{
		Message: "Context generated",
		Context: text,
	})
}
