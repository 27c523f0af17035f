package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/zakhoudache/pastlink-nodes-sub000/internal/server/middleware"
	"github.com/zakhoudache/pastlink-nodes-sub000/internal/util"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai/gemini"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/graph"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/render"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/store"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiClient := gemini.NewClient(gemini.NewClientParams{
		APIKey:  util.GetEnv("AI_API_KEY"),
		BaseURL: util.GetEnvString("AI_BASE_URL", ""),
		Model:   util.GetEnvString("AI_MODEL", ""),

		MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		RequestsPerSecond:     util.GetEnvNumeric("AI_REQ_PER_SEC", 2),
	})

	highlights, err := store.OpenHighlights(util.GetEnvString("STORE_PATH", "highlights.db"))
	if err != nil {
		logger.Fatal("Failed to open highlight store", "err", err)
	}
	defer highlights.Close()

	graphStore := graph.NewStore()
	canvas, err := render.NewCanvas(graphStore)
	if err != nil {
		logger.Fatal("Failed to create render canvas", "err", err)
	}

	app := &mid.App{
		AiClient:   aiClient,
		Graph:      graphStore,
		Highlights: highlights,
		Canvas:     canvas,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
