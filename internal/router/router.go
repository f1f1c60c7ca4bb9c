package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/handlers"
	"github.com/squadmakers/chistes/internal/jokes"
	"github.com/squadmakers/chistes/internal/middleware"
	"github.com/squadmakers/chistes/internal/store"
)

func New(s *store.Store, client *jokes.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	jokeHandler := handlers.NewJokeHandler(s, client)
	queryHandler := handlers.NewQueryHandler(s)
	userHandler := handlers.NewUserHandler(s)
	themeHandler := handlers.NewThemeHandler(s)

	r.GET("/health", handlers.HealthCheck)

	chistes := r.Group("/chistes")
	{
		chistes.GET("", jokeHandler.GetRandomJoke)
		chistes.GET("/emparejados", jokeHandler.GetPairedJokes)
		chistes.GET("/:source", jokeHandler.GetJokeBySource)
		chistes.POST("", jokeHandler.SaveJoke)
		chistes.PUT("/:id", jokeHandler.UpdateJoke)
		chistes.DELETE("/:id", jokeHandler.DeleteJoke)
	}

	r.GET("/consultas", queryHandler.GetJokes)
	r.GET("/matematico", handlers.Math)

	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("", userHandler.CreateUser)
		usuarios.GET("", userHandler.ListUsers)
	}

	tematicas := r.Group("/tematicas")
	{
		tematicas.POST("", themeHandler.CreateTheme)
		tematicas.GET("", themeHandler.ListThemes)
	}

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "SquadMakers Jokes API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"jokes":   "/chistes",
				"math":    "/matematico",
				"queries": "/consultas",
				"users":   "/usuarios",
				"themes":  "/tematicas",
				"health":  "/health",
			},
		})
	})

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":  "endpoint not found",
			"path":   ctx.Request.URL.Path,
			"method": ctx.Request.Method,
		})
	})

	return r
}
