package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"quizfunnel/cmd/fx/accountfx"
	"quizfunnel/cmd/fx/controllersfx"
	"quizfunnel/cmd/fx/dbfx"
	"quizfunnel/cmd/fx/editorfx"
	"quizfunnel/cmd/fx/funnelfx"
	"quizfunnel/cmd/fx/healthfx"
	"quizfunnel/cmd/fx/kvfx"
	"quizfunnel/cmd/fx/quizfx"
	"quizfunnel/cmd/fx/trackingfx"
	"quizfunnel/internal/api/controllers"
	"quizfunnel/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		dbfx.Module,
		kvfx.Module,
		quizfx.Module,
		funnelfx.Module,
		editorfx.Module,
		trackingfx.Module,
		accountfx.Module,
		healthfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	quizController *controllers.QuizController,
	editorController *controllers.EditorController,
	funnelController *controllers.FunnelController,
	trackingController *controllers.TrackingController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, quizController, editorController, funnelController, trackingController, accountController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	quizController *controllers.QuizController,
	editorController *controllers.EditorController,
	funnelController *controllers.FunnelController,
	trackingController *controllers.TrackingController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.GetHealth)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)

	// Public quiz runtime surface.
	apiGroup := r.Group("/api")
	apiGroup.GET("/styles", quizController.GetStyles)
	apiGroup.GET("/quiz/:id", quizController.GetQuiz)
	apiGroup.GET("/quiz/:id/questions", quizController.GetQuizQuestions)

	sessionsGroup := apiGroup.Group("/sessions")
	sessionsGroup.POST("", quizController.StartSession)
	sessionsGroup.GET("/:sessionId", quizController.GetSession)
	sessionsGroup.POST("/:sessionId/answers", quizController.RecordAnswer)
	sessionsGroup.POST("/:sessionId/strategic-answers", quizController.RecordStrategicAnswer)
	sessionsGroup.POST("/:sessionId/advance", quizController.Advance)
	sessionsGroup.POST("/:sessionId/retreat", quizController.Retreat)
	sessionsGroup.POST("/:sessionId/result", quizController.ComputeResult)
	sessionsGroup.POST("/:sessionId/reset", quizController.Reset)

	trackingGroup := r.Group("/tracking")
	trackingGroup.POST("/events", trackingController.TrackEvent)

	// Operator surface: the visual editor and funnel management.
	funnelsGroup := r.Group("/funnels")
	funnelsGroup.Use(middleware.JWTAuthMiddleware())
	funnelsGroup.POST("", funnelController.CreateFunnel)
	funnelsGroup.GET("", funnelController.ListFunnels)
	funnelsGroup.GET("/:funnelId", funnelController.GetFunnel)
	funnelsGroup.DELETE("/:funnelId", funnelController.DeleteFunnel)

	editorGroup := r.Group("/editor/sessions")
	editorGroup.Use(middleware.JWTAuthMiddleware())
	editorGroup.POST("", editorController.OpenSession)
	editorGroup.GET("/:sessionId", editorController.GetDocument)
	editorGroup.DELETE("/:sessionId", editorController.CloseSession)
	editorGroup.POST("/:sessionId/save", editorController.Save)
	editorGroup.POST("/:sessionId/add-page", editorController.AddPage)
	editorGroup.POST("/:sessionId/pages/:index/duplicate", editorController.DuplicatePage)
	editorGroup.DELETE("/:sessionId/pages/:index", editorController.DeletePage)
	editorGroup.POST("/:sessionId/reorder-pages", editorController.ReorderPages)
	editorGroup.POST("/:sessionId/set-active-page", editorController.SetActivePage)
	editorGroup.POST("/:sessionId/add-component", editorController.AddComponent)
	editorGroup.POST("/:sessionId/components/:componentId/select", editorController.SelectComponent)
	editorGroup.PATCH("/:sessionId/components/:componentId", editorController.UpdateComponent)
	editorGroup.POST("/:sessionId/components/:componentId/duplicate", editorController.DuplicateComponent)
	editorGroup.DELETE("/:sessionId/components/:componentId", editorController.DeleteComponent)
	editorGroup.POST("/:sessionId/components/:componentId/move", editorController.MoveComponent)

	// Admin diagnostics: pixel analysis and tracking configuration.
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.GET("/tracking/settings", trackingController.GetSettings)
	adminGroup.PUT("/tracking/settings", trackingController.UpdateSettings)
	adminGroup.GET("/tracking/events", trackingController.GetEventLog)
	adminGroup.GET("/tracking/summary", trackingController.GetSummary)
	adminGroup.POST("/tracking/clear-mock-data", trackingController.ClearMockData)
}
