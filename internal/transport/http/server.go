package http

import (
	"github.com/gin-gonic/gin"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/bootstrap"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/session"
	"github.com/AyushmanGupta21/lung-cancer-classification/internal/transport/http/handler"
)

// NewAPIRouter assembles the REST front-end.
func NewAPIRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	service := diagnosis.NewService(app.Model)
	healthHandler := handler.NewHealthHandler(app.Model)
	predictHandler := handler.NewPredictHandler(service)
	modelInfoHandler := handler.NewModelInfoHandler(app.Model)

	router.StaticFile("/", "web/index.html")

	api := router.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/predict", predictHandler.Predict)
	api.GET("/model-info", modelInfoHandler.Info)

	return router
}

// NewDashboardRouter assembles the interactive front-end.
func NewDashboardRouter(app *bootstrap.App, store session.Store) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	service := diagnosis.NewService(app.Model)
	healthHandler := handler.NewHealthHandler(app.Model)
	dashboardHandler := handler.NewDashboardHandler(service, store)

	router.StaticFile("/", "web/dashboard.html")
	router.GET("/api/health", healthHandler.Check)

	dashboard := router.Group("/dashboard")
	dashboard.POST("/analyze", dashboardHandler.Analyze)
	dashboard.GET("/result", dashboardHandler.Result)
	dashboard.GET("/report", dashboardHandler.Report)

	return router
}
