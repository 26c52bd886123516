package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/interview-coach-team/interview-coach/docs"
	"github.com/interview-coach-team/interview-coach/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	interviewHandler *Interview
	devTokenHandler  *DevToken
	authMW           echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, interviewHandler *Interview, devTokenHandler *DevToken, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:              cfg,
		interviewHandler: interviewHandler,
		devTokenHandler:  devTokenHandler,
		authMW:           authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupInterviewRoutes(v1)

	// dev token minting, never in production
	if rt.cfg.Server.Environment != "production" && rt.devTokenHandler != nil {
		v1.POST("/dev/token", rt.devTokenHandler.Issue)
	}
}

// setupInterviewRoutes configures the live interview routes
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	interviews := g.Group("/interviews", rt.authMW)

	interviews.POST("", rt.interviewHandler.Start)
	interviews.POST("/answer", rt.interviewHandler.Answer)
	interviews.POST("/answer/audio", rt.interviewHandler.AudioAnswer)
	interviews.POST("/end", rt.interviewHandler.End)
	interviews.GET("/metrics", rt.interviewHandler.Metrics)
	interviews.GET("/history", rt.interviewHandler.History)
	interviews.GET("/:session_id/report", rt.interviewHandler.Report)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
