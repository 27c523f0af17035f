package routes

import (
	"net/http"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateHighlightHandler persists a text highlight.
func CreateHighlightHandler(c echo.Context) error {
	type createHighlightRequest struct {
		Text  string `json:"text" validate:"required"`
		From  int    `json:"from" validate:"gte=0"`
		To    int    `json:"to" validate:"gtefield=From"`
		Color string `json:"color"`
	}

	type createHighlightResponse struct {
		Message   string            `json:"message"`
		Highlight *common.Highlight `json:"highlight,omitempty"`
	}

	data := new(createHighlightRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createHighlightResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createHighlightResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	h, err := app.Highlights.Add(common.Highlight{
		Text:  data.Text,
		From:  data.From,
		To:    data.To,
		Color: data.Color,
	})
	if err != nil {
		logger.Error("Failed to persist highlight", "err", err)
		return c.JSON(http.StatusInternalServerError, createHighlightResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createHighlightResponse{
		Message:   "Highlight saved",
		Highlight: &h,
	})
}
