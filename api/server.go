package api

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/curve/config"
)

// Server exposes the keyframe renderer over HTTP.
type Server struct {
	cfg    config.HttpConfig
	engine config.EngineConfig
}

// NewServer creates a Server. Renders without an explicit rate use the
// engine's keyframe rate.
func NewServer(cfg config.HttpConfig, engine config.EngineConfig) *Server {
	s := new(Server)
	s.cfg = cfg
	s.engine = engine
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/easings", s.handleEasings)
		api.POST("/render", s.handleRender)
		api.POST("/render/color", s.handleRenderColor)
	}

	if s.cfg.Static != "" {
		r.NoRoute(gin.WrapH(staticHandler(s.cfg.Static)))
	}
	return r
}

// Serve listens on the configured address until the listener fails.
func (s *Server) Serve() error {
	log.Printf("Listening on %s...", s.cfg.Addr)
	return s.Router().Run(s.cfg.Addr)
}
