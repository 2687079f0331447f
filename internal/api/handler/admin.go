package handler

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jon4hz/wishwell/internal/api/crud"
	"github.com/jon4hz/wishwell/internal/database"
	"github.com/jon4hz/wishwell/internal/notify/email"
)

// wishForm carries the admin form fields for a wish.
type wishForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"omitempty,max=1000"`
	WishlistID  uint   `form:"wishlist_id" binding:"required"`
}

// NewWishResource builds the generic admin CRUD resource for wishes.
func NewWishResource(gormDB *gorm.DB, db database.DB, notifier *email.NotificationService) (*crud.Resource[database.Wish], error) {
	return crud.NewResource(crud.Config[database.Wish]{
		DB:           gormDB,
		Name:         "wishes",
		ListTemplate: "admin_wishes.html",
		FormTemplate: "admin_wish_form.html",
		Preloads:     []string{"Wishlist"},
		Bind: func(c *gin.Context, wish *database.Wish) error {
			var form wishForm
			if err := c.ShouldBind(&form); err != nil {
				return err
			}
			wish.Title = form.Title
			wish.Description = form.Description
			wish.WishlistID = form.WishlistID
			return nil
		},
		FormData: func(c *gin.Context) (gin.H, error) {
			wishlists, err := db.GetAllWishlists(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return gin.H{"Wishlists": wishlists}, nil
		},
		AfterCreate: func(c *gin.Context, wish *database.Wish) {
			wishlist, err := db.GetWishlistByID(c.Request.Context(), wish.WishlistID)
			if err != nil {
				log.Error("failed to load wishlist for notification", "error", err)
				return
			}
			// A failed notice never fails the request.
			if err := notifier.SendWishAdded(&wishlist.Recipient, wishlist.Title, wish.Title); err != nil {
				log.Error("failed to send wish notification", "error", err)
			}
		},
	})
}
