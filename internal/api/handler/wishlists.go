package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/wishwell/internal/api/models"
)

// ListWishlists renders all wishlists of the recipient named in the path.
func (h *Handler) ListWishlists(c *gin.Context) {
	username := c.Param("username")

	recipient, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	wishlists, err := h.db.GetWishlistsByRecipient(c.Request.Context(), recipient.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load wishlists"})
		return
	}

	c.HTML(http.StatusOK, "wishlists.html", gin.H{
		"Recipient": models.ToUser(recipient, h.gravatarCfg),
		"Wishlists": models.ToWishlists(wishlists, h.gravatarCfg),
	})
}

// ShowWishlist renders a single wishlist with its wishes. The wishlist
// must belong to the recipient named in the path.
func (h *Handler) ShowWishlist(c *gin.Context) {
	recipient, wishlist, ok := h.resolveWishlist(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "wishlist.html", gin.H{
		"Recipient": recipient,
		"Wishlist":  wishlist,
	})
}

// ShowWish renders a single wish. The wish must belong to the wishlist in
// the path, which in turn must belong to the named recipient.
func (h *Handler) ShowWish(c *gin.Context) {
	recipient, wishlist, ok := h.resolveWishlist(c)
	if !ok {
		return
	}

	wishID, err := parseUintParam(c.Param("wishID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	wish, err := h.db.GetWishByID(c.Request.Context(), wishID)
	if err != nil || wish.WishlistID != wishlist.ID {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	c.HTML(http.StatusOK, "wish.html", gin.H{
		"Recipient": recipient,
		"Wishlist":  wishlist,
		"Wish":      models.ToWish(wish),
	})
}

// SharedWishlist renders a wishlist through its opaque share token,
// without requiring a session.
func (h *Handler) SharedWishlist(c *gin.Context) {
	wishlist, err := h.db.GetWishlistByShareToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	c.HTML(http.StatusOK, "shared.html", gin.H{
		"Wishlist": models.ToWishlist(wishlist, h.gravatarCfg),
	})
}

// resolveWishlist looks up the recipient and wishlist named in the path
// and verifies the wishlist actually belongs to that recipient. On any
// miss it renders the not-found page and reports false.
func (h *Handler) resolveWishlist(c *gin.Context) (models.User, models.Wishlist, bool) {
	username := c.Param("username")

	recipient, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return models.User{}, models.Wishlist{}, false
	}

	listID, err := parseUintParam(c.Param("listID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return models.User{}, models.Wishlist{}, false
	}

	wishlist, err := h.db.GetWishlistByID(c.Request.Context(), listID)
	if err != nil || wishlist.RecipientID != recipient.ID {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return models.User{}, models.Wishlist{}, false
	}

	return models.ToUser(recipient, h.gravatarCfg), models.ToWishlist(wishlist, h.gravatarCfg), true
}
