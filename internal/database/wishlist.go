package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Wishlist is a named collection of wishes created for a recipient.
// An organiser may curate the list on the recipient's behalf.
// Deleting a wishlist deletes its wishes.
type Wishlist struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"not null"`
	RecipientID uint   `gorm:"not null;index"`
	Recipient   User   `gorm:"foreignKey:RecipientID"`
	OrganiserID *uint  `gorm:"index"`
	Organiser   *User  `gorm:"foreignKey:OrganiserID"`
	ShareToken  string `gorm:"uniqueIndex;not null"`
	Wishes      []Wish `gorm:"constraint:OnDelete:CASCADE;"`
}

// BeforeCreate assigns an opaque share token so the list can be viewed
// through a link without a session.
func (w *Wishlist) BeforeCreate(_ *gorm.DB) error {
	if w.ShareToken == "" {
		w.ShareToken = uuid.New().String()
	}
	return nil
}

func (c *Client) CreateWishlist(ctx context.Context, wishlist *Wishlist) error {
	if err := c.db.WithContext(ctx).Create(wishlist).Error; err != nil {
		log.Error("failed to create wishlist", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetWishlistByID(ctx context.Context, id uint) (*Wishlist, error) {
	var wishlist Wishlist
	if err := c.db.WithContext(ctx).Preload("Recipient").Preload("Organiser").Preload("Wishes").First(&wishlist, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get wishlist by ID", "error", err)
		}
		return nil, err
	}
	return &wishlist, nil
}

func (c *Client) GetWishlistByShareToken(ctx context.Context, token string) (*Wishlist, error) {
	var wishlist Wishlist
	if err := c.db.WithContext(ctx).Preload("Recipient").Preload("Wishes").Where("share_token = ?", token).First(&wishlist).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get wishlist by share token", "error", err)
		}
		return nil, err
	}
	return &wishlist, nil
}

func (c *Client) GetWishlistsByRecipient(ctx context.Context, recipientID uint) ([]Wishlist, error) {
	var wishlists []Wishlist
	if err := c.db.WithContext(ctx).Preload("Wishes").Where("recipient_id = ?", recipientID).Order("title").Find(&wishlists).Error; err != nil {
		log.Error("failed to get wishlists by recipient", "error", err)
		return nil, err
	}
	return wishlists, nil
}

func (c *Client) GetAllWishlists(ctx context.Context) ([]Wishlist, error) {
	var wishlists []Wishlist
	if err := c.db.WithContext(ctx).Preload("Recipient").Order("title").Find(&wishlists).Error; err != nil {
		log.Error("failed to get all wishlists", "error", err)
		return nil, err
	}
	return wishlists, nil
}

// DeleteWishlist removes a wishlist together with all wishes it owns.
func (c *Client) DeleteWishlist(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Select(clause.Associations).Delete(&Wishlist{ID: id}).Error; err != nil {
		log.Error("failed to delete wishlist", "error", err)
		return err
	}
	return nil
}

func (c *Client) CountWishlists(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Wishlist{}).Count(&count).Error; err != nil {
		log.Error("failed to count wishlists", "error", err)
		return 0, err
	}
	return count, nil
}
