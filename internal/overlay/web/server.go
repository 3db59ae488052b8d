package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"syshud/internal/models"
	"syshud/internal/utils"
	"syshud/internal/version"
)

// Server hosts the overlay page, its websocket feed, and the close-affordance
// endpoint on loopback.
type Server struct {
	Hub     *Hub
	Surface *Surface

	port        int
	hotkeyLabel string
	latest      func() (models.Snapshot, bool)
	limiter     *RateLimiter
	srv         *http.Server
	log         *utils.Logger
}

// NewServer assembles the hub, surface, and router. latest supplies the most
// recent snapshot for page loads that happen between pushes.
func NewServer(port int, hotkeyLabel string, latest func() (models.Snapshot, bool), log *utils.Logger) *Server {
	hub := NewHub(log)
	s := &Server{
		Hub:         hub,
		Surface:     NewSurface(hub),
		port:        port,
		hotkeyLabel: hotkeyLabel,
		latest:      latest,
		limiter:     NewRateLimiter(rate.Every(time.Minute/300), 30),
		log:         log,
	}
	s.srv = &http.Server{
		Addr:           fmt.Sprintf("127.0.0.1:%d", port),
		Handler:        s.setupRouter(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   0, // websocket pushes are long-lived
		MaxHeaderBytes: 1 << 20,
	}
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.limiter.Middleware())

	tmpl := template.Must(template.ParseFS(Assets, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "overlay.html", gin.H{
			"title":  "System Monitor",
			"hotkey": s.hotkeyLabel,
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.String()})
	})

	r.GET("/api/snapshot", func(c *gin.Context) {
		snap, ok := s.latest()
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"visible": s.Surface.Visible(),
			"data":    payloadFor(snap),
		})
	})

	r.POST("/api/close", func(c *gin.Context) {
		s.Surface.requestClose()
		c.Status(http.StatusNoContent)
	})

	r.GET("/ws", s.Hub.HandleWebSocket())

	return r
}

// URL returns the overlay address for the banner and tray.
func (s *Server) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.port)
}

// Start runs the hub and serves until Shutdown. Blocks; run in a goroutine.
func (s *Server) Start() error {
	go s.Hub.Run()
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, disconnects overlay pages, and
// releases the limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Stop()
	s.limiter.Stop()
	return s.srv.Shutdown(ctx)
}
