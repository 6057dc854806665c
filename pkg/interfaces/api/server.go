// Package api exposes the workspace over HTTP and pushes changes over websocket
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/services/workspace"
	"github.com/vsinha/prodtrack/pkg/config"
	csvloader "github.com/vsinha/prodtrack/pkg/infrastructure/repositories/csv"
)

// Server wires the gin engine to one workspace
type Server struct {
	config    *config.Config
	workspace *workspace.Workspace
	hub       *Hub
	csv       *csvloader.Loader
	engine    *gin.Engine
	http      *http.Server
	logger    *zap.Logger
}

// NewServer builds the router. The hub should already be subscribed to the
// workspace's event store and running.
func NewServer(cfg *config.Config, ws *workspace.Workspace, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		config:    cfg,
		workspace: ws,
		hub:       hub,
		csv:       csvloader.NewLoader(),
		engine:    gin.New(),
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestID())
	s.engine.Use(Logger(s.logger))
	s.engine.Use(CORS(s.config.Security.AllowedOrigins))
	if s.config.Security.RateLimitEnabled && s.config.Security.RateLimit > 0 {
		s.engine.Use(RateLimit(s.config.Security.RateLimit, s.config.Security.RateBurst))
	}
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/api/v1")

	components := v1.Group("/components")
	components.GET("", s.listComponents)
	components.POST("", s.createComponent)
	components.PUT("/stock", s.setStock)
	components.GET("/:id", s.getComponent)
	components.PATCH("/:id", s.updateComponent)
	components.DELETE("/:id", s.deleteComponent)

	categories := v1.Group("/categories")
	categories.GET("", s.listCategories)
	categories.POST("", s.createCategory)
	categories.PATCH("/:id", s.renameCategory)
	categories.DELETE("/:id", s.deleteCategory)
	categories.POST("/:id/select", s.selectCategory)

	nodes := v1.Group("/subassemblies")
	nodes.GET("", s.listNodes)
	nodes.POST("", s.createNode)
	nodes.GET("/:id", s.getNode)
	nodes.PATCH("/:id", s.updateNode)
	nodes.DELETE("/:id", s.deleteNode)
	nodes.POST("/:id/children", s.connect)
	nodes.DELETE("/:id/children/:child", s.disconnect)
	nodes.GET("/:id/requirements", s.requirements)
	nodes.PUT("/:id/requirements/:component", s.setRequirement)
	nodes.DELETE("/:id/requirements/:component", s.removeRequirement)
	nodes.POST("/:id/comments", s.addComment)
	nodes.DELETE("/:id/comments/:index", s.removeComment)
	nodes.POST("/:id/select", s.selectNode)
	nodes.POST("/:id/edit", s.editNode)

	v1.GET("/roots", s.roots)
	v1.GET("/selection", s.selection)

	statuses := v1.Group("/statuses")
	statuses.GET("", s.listStatuses)
	statuses.POST("", s.createStatus)
	statuses.PUT("/:id", s.updateStatus)
	statuses.DELETE("/:id", s.deleteStatus)

	v1.POST("/resolve", s.resolve)
	v1.POST("/plan", s.plan)
	v1.POST("/plan/export", s.exportPlan)
	v1.GET("/validate", s.validate)
	v1.GET("/issues", s.issues)
	v1.GET("/changes", s.changes)

	v1.GET("/search/subassemblies", s.searchNodes)
	v1.GET("/search/components", s.searchComponents)
	v1.GET("/names/:name", s.resolveName)

	chat := v1.Group("/chat")
	chat.POST("/composition", s.composition)
	chat.POST("/produce", s.produce)

	v1.POST("/quantities", s.applyQuantities)
	v1.POST("/import/bom", s.importBOM)
	v1.POST("/import/quantities", s.importQuantities)
	v1.GET("/templates/:kind", s.template)

	v1.GET("/snapshot", s.snapshot)
	v1.PUT("/snapshot", s.loadSnapshot)

	if s.hub != nil {
		v1.GET("/ws", s.hub.ServeWS(newUpgrader(s.config.Security.AllowedOrigins)))
		v1.GET("/ws/stats", s.wsStats)
	}
}

// Handler returns the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	Success(c, gin.H{"status": "ok"})
}
