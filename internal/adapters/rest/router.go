// Package rest is the JSON surface used by the check-in UI.
package rest

import (
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the check-in routes behind CORS for origins.
func NewRouter(h *Handler, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", h.Health)

	api := r.Group("/api/checkin")
	{
		api.POST("/scan", h.Scan)
		api.POST("/confirm", h.Confirm)
		api.POST("/reprint", h.Reprint)
		api.GET("/print-status/:id", h.PrintStatus)
		api.POST("/refresh", h.Refresh)
		api.GET("/stats", h.Stats)
		api.POST("/reset", h.Reset)
		api.GET("/journal", h.Journal)
	}
	return r
}

// NewServer wraps handler in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), time.Since(start))
	}
}
