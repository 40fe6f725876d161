package http

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/okazakov/boardwire-server/internal/catalog"
	"github.com/okazakov/boardwire-server/internal/config"
	"github.com/okazakov/boardwire-server/internal/core"
)

// NewServer builds the HTTP server: the quiz API under /api and the
// whiteboard WebSocket endpoint at /ws.
func NewServer(hub *core.Hub, store catalog.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	quizHandlers := NewQuizHandlers(store, logger)

	api := router.Group("/api")
	api.GET("/health", quizHandlers.Health)
	api.GET("/quizzes", quizHandlers.List)
	api.GET("/quizzes/:id", quizHandlers.Get)
	api.POST("/quizzes", quizHandlers.Create)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
