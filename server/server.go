// Package server is the reference taskdeck backend: a JSON REST service
// over SQLite or Postgres that issues signed credentials and stores
// project documents per account.
package server

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/taskdeck/taskdeck/internal/logger"
)

// Server serves the REST surface the taskdeck client consumes
type Server struct {
	store  *Store
	secret []byte
	echo   *echo.Echo
}

// New creates a server over the database behind dsn. When secret is empty
// a random signing key is generated, which invalidates tokens on restart.
func New(dsn string, secret string) (*Server, error) {
	store, err := OpenStore(dsn)
	if err != nil {
		return nil, err
	}

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		logger.Warn("no signing secret configured, tokens will not survive restart")
	}

	s := &Server{store: store, secret: key}
	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", c.Response().Status),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/google", s.handleGoogle)

	protected := e.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/auth/me", s.handleMe)
	protected.GET("/projects", s.handleListProjects)
	protected.POST("/projects", s.handleCreateProject)
	protected.PUT("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts listening on addr
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
