package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gotodo/internal/app"
	"gotodo/internal/bootstrap"
	"gotodo/internal/repository"
	"gotodo/internal/transport/http/handler"
	"gotodo/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(app.Config.CORS.AllowedOrigin),
	)

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.StaticFile("/login", "web/login.html")
	router.StaticFile("/register", "web/register.html")
	router.GET("/health", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	todoRepo := repository.NewTodoRepository(app.DB)
	activityRepo := repository.NewActivityRepository(app.DB)

	var publisher appsvc.ActivityPublisher
	if app.ActivityPub != nil {
		publisher = app.ActivityPub
	}

	authService := appsvc.NewAuthService(
		userRepo,
		publisher,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)
	todoService := appsvc.NewTodoService(todoRepo, publisher)
	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	activityHandler := handler.NewActivityHandler(activityRepo)

	authGate := middleware.AuthRequired(app.Config.Auth.JWTSecret, userRepo)
	authLimiter := middleware.RateLimit(
		app.Redis,
		"auth",
		app.Config.Redis.AuthLimit,
		time.Duration(app.Config.Redis.AuthWindowSeconds)*time.Second,
		"too many authentication attempts, please try again later",
	)
	apiLimiter := middleware.RateLimit(
		app.Redis,
		"api",
		app.Config.Redis.APILimit,
		time.Duration(app.Config.Redis.APIWindowSeconds)*time.Second,
		"too many requests, please try again later",
	)

	api := router.Group("/api")
	api.Use(apiLimiter)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authLimiter, authHandler.Register)
	authGroup.POST("/login", authLimiter, authHandler.Login)
	authGroup.GET("/me", authGate, authHandler.Me)

	todoGroup := api.Group("/todos")
	todoGroup.Use(authGate)
	todoGroup.POST("", todoHandler.Create)
	todoGroup.GET("", todoHandler.List)
	todoGroup.PUT("/:id", todoHandler.Update)
	todoGroup.DELETE("/:id", todoHandler.Delete)

	api.GET("/activity", authGate, activityHandler.List)

	return router
}
