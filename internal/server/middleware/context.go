package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/graph"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/render"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/store"
)

// App bundles the shared clients and stores handlers work with.
type App struct {
	AiClient   ai.Client
	Graph      *graph.Store
	Highlights *store.HighlightStore
	Canvas     *render.Canvas
}

// AppContext extends the request context with the application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context in an AppContext.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
