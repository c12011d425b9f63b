// Package metaserver provides a fake instance metadata server for local
// testing. It serves the same project-ID path and honors the same flavor
// header as the real link-local metadata service, letting consumers exercise
// metadata-based dataset inference on hosts where no cloud metadata service
// exists (pointed at via a custom probe endpoint).
package metaserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/logging"
	"github.com/gin-gonic/gin"
)

// Server is a fake metadata endpoint bound to a local address. It answers
// GET /computeMetadata/v1/project/project-id with a configured project ID as
// a plain-text body, exactly like the real metadata service.
type Server struct {
	projectID  string
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a fake metadata server that will report the given
// project ID on the standard bind address.
func NewServer(projectID, bindAddr string, bindPort int) *Server {
	// Release mode keeps gin quiet outside of debugging sessions
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		projectID: projectID,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", bindAddr, bindPort),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewServerWithListener creates a fake metadata server on an existing
// listener. Used by tests that bind to an ephemeral port.
func NewServerWithListener(projectID string, listener net.Listener) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		projectID: projectID,
		listener:  listener,
		httpServer: &http.Server{
			Addr:         listener.Addr().String(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
	return s
}

// Addr returns the address the server is (or will be) bound to.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Endpoint returns the base URL a metadata probe should be pointed at.
func (s *Server) Endpoint() string {
	return "http://" + s.Addr()
}

// Start begins serving metadata requests. Binding is verified before the
// serve goroutine starts so configuration errors surface immediately.
func (s *Server) Start() error {
	logging.Info("Starting fake metadata server on %s", s.httpServer.Addr)

	router := gin.New()

	// Route gin's internal logging through structured logging unless the CLI
	// already configured output
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(gin.Recovery())
	s.setupRoutes(router)
	s.httpServer.Handler = router

	if s.listener == nil {
		listener, err := net.Listen("tcp", s.httpServer.Addr)
		if err != nil {
			return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
		}
		s.listener = listener
	}

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			logging.Error("fake metadata server failed: %v", err)
		}
	}()

	logging.Info("Fake metadata server serving project ID %q", s.projectID)
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// setupRoutes wires the metadata paths onto the router.
func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET(config.MetadataProjectPath, s.handleProjectID)
}

// handleProjectID serves the project ID as a plain-text body. The real
// metadata service rejects requests without the flavor header, and the fake
// mirrors that so misconfigured clients fail the same way in both places.
func (s *Server) handleProjectID(c *gin.Context) {
	if c.GetHeader(config.MetadataFlavorHeader) != config.MetadataFlavorValue {
		c.String(http.StatusForbidden, "missing %s header", config.MetadataFlavorHeader)
		return
	}
	c.Header(config.MetadataFlavorHeader, config.MetadataFlavorValue)
	c.String(http.StatusOK, "%s", s.projectID)
}
