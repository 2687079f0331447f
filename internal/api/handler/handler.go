package handler

import (
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jon4hz/wishwell/internal/api/models"
	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
)

// Handler serves the public browsing pages.
type Handler struct {
	db          database.DB
	gravatarCfg *config.GravatarConfig
}

// New creates a new Handler.
func New(db database.DB, gravatarCfg *config.GravatarConfig) *Handler {
	return &Handler{
		db:          db,
		gravatarCfg: gravatarCfg,
	}
}

// Home renders the landing page with all users and all wishlists.
func (h *Handler) Home(c *gin.Context) {
	var (
		users     []database.User
		wishlists []database.Wishlist
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		users, err = h.db.GetAllUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		wishlists, err = h.db.GetAllWishlists(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load landing page data", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load data"})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Users":     models.ToUsers(users, h.gravatarCfg),
		"Wishlists": models.ToWishlists(wishlists, h.gravatarCfg),
	})
}

// About renders the about page.
func (h *Handler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{})
}

// Contact renders the contact page.
func (h *Handler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{})
}

func parseUintParam(raw string) (uint, error) {
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(val)
}
