package server

import (
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	api := e.Group("/api")

	// Knowledge graph routes. Reads use optional auth so the visibility
	// rule can distinguish anonymous from non-owning requesters.
	api.POST("/knowledge-graph/generate", routes.GenerateGraphHandler, middleware.AuthMiddleware)
	api.GET("/knowledge-graph", routes.GetGraphsHandler)
	api.GET("/knowledge-graph/user", routes.GetUserGraphsHandler, middleware.AuthMiddleware)
	api.GET("/knowledge-graph/:id", routes.GetGraphHandler, middleware.OptionalAuthMiddleware)
	api.PUT("/knowledge-graph/:id", routes.UpdateGraphHandler, middleware.AuthMiddleware)
	api.DELETE("/knowledge-graph/:id", routes.DeleteGraphHandler, middleware.AuthMiddleware)
	api.POST("/knowledge-graph/:id/enhance", routes.EnhanceGraphHandler, middleware.AuthMiddleware)

	// Case routes
	api.POST("/cases", routes.CreateCaseHandler, middleware.AuthMiddleware)
	api.GET("/cases", routes.GetCasesHandler, middleware.AuthMiddleware)
	api.GET("/cases/:id", routes.GetCaseHandler, middleware.AuthMiddleware)
	api.GET("/cases/:id/status", routes.GetCaseStatusHandler, middleware.AuthMiddleware)
	api.POST("/cases/:id/analyze", routes.AnalyzeCaseHandler, middleware.AuthMiddleware)
	api.GET("/cases/:id/document", routes.GetCaseDocumentHandler, middleware.AuthMiddleware)

	// Search over public graphs, and the assistant
	api.GET("/search", routes.SearchHandler)
	api.POST("/chat", routes.ChatHandler, middleware.AuthMiddleware)
}
