package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/wishwell/internal/api/auth"
	"github.com/jon4hz/wishwell/internal/api/handler"
	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
	"github.com/jon4hz/wishwell/internal/notify/email"
	"github.com/jon4hz/wishwell/web"
)

// Server serves the wishwell web application.
type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	db           *database.Client
	authProvider *auth.Provider
	notifier     *email.NotificationService
}

// New creates a new server.
func New(cfg *config.Config, db *database.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())
	ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	ginEngine.SetHTMLTemplate(tmpl)

	return &Server{
		cfg:          cfg,
		ginEngine:    ginEngine,
		db:           db,
		authProvider: auth.NewProvider(db),
		notifier:     email.New(cfg.Email),
	}, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("wishwell_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := handler.New(s.db, s.cfg.Gravatar)

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/about", h.About)
	s.ginEngine.GET("/contact", h.Contact)

	s.ginEngine.GET("/login", s.authProvider.LoginForm)
	s.ginEngine.POST("/login", s.authProvider.Login)
	s.ginEngine.GET("/logout", s.authProvider.Logout)

	s.ginEngine.GET("/wishlists/:username", h.ListWishlists)
	s.ginEngine.GET("/wishlists/:username/:listID", h.ShowWishlist)
	s.ginEngine.GET("/wishlists/:username/:listID/:wishID", h.ShowWish)
	s.ginEngine.GET("/shared/:token", h.SharedWishlist)
}

func (s *Server) setupAdminRoutes() error {
	wishes, err := handler.NewWishResource(s.db.Gorm(), s.db, s.notifier)
	if err != nil {
		return err
	}

	adminGroup := s.ginEngine.Group("/admin")
	adminGroup.Use(s.authProvider.RequireAuth(), s.authProvider.RequireRole(auth.RoleAdmin))
	wishes.Register(adminGroup.Group("/wishes"))
	return nil
}

// Run sets up all routes and starts the server.
func (s *Server) Run() error {
	s.setupRoutes()
	if err := s.setupAdminRoutes(); err != nil {
		return err
	}

	return s.ginEngine.Run(s.cfg.Listen)
}
