package database

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// MaxDescriptionLen is the upper bound for a wish description.
const MaxDescriptionLen = 1000

var (
	// ErrTitleRequired is returned when a wish is written without a title.
	ErrTitleRequired = errors.New("wish title is required")
	// ErrDescriptionTooLong is returned when a wish description exceeds MaxDescriptionLen.
	ErrDescriptionTooLong = errors.New("wish description exceeds 1000 characters")
)

// Wish is a single item on a wishlist: a title and an optional long-text
// description. A wish belongs to exactly one wishlist for its lifetime.
type Wish struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	WishlistID  uint   `gorm:"not null;index"`
	Wishlist    Wishlist
}

// BeforeSave guards the field constraints for every write path,
// including fixture loading. The description bound counts characters,
// not bytes, matching the form validation.
func (w *Wish) BeforeSave(_ *gorm.DB) error {
	if w.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(w.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (c *Client) CreateWish(ctx context.Context, wish *Wish) error {
	if err := c.db.WithContext(ctx).Omit("Wishlist").Create(wish).Error; err != nil {
		log.Error("failed to create wish", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetWishByID(ctx context.Context, id uint) (*Wish, error) {
	var wish Wish
	if err := c.db.WithContext(ctx).Preload("Wishlist").Preload("Wishlist.Recipient").First(&wish, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get wish by ID", "error", err)
		}
		return nil, err
	}
	return &wish, nil
}

func (c *Client) GetAllWishes(ctx context.Context) ([]Wish, error) {
	var wishes []Wish
	if err := c.db.WithContext(ctx).Preload("Wishlist").Order("title").Find(&wishes).Error; err != nil {
		log.Error("failed to get all wishes", "error", err)
		return nil, err
	}
	return wishes, nil
}

func (c *Client) UpdateWish(ctx context.Context, wish *Wish) error {
	if err := c.db.WithContext(ctx).Omit("Wishlist").Save(wish).Error; err != nil {
		log.Error("failed to update wish", "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteWish(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&Wish{}, id).Error; err != nil {
		log.Error("failed to delete wish", "error", err)
		return err
	}
	return nil
}

func (c *Client) CountWishes(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Wish{}).Count(&count).Error; err != nil {
		log.Error("failed to count wishes", "error", err)
		return 0, err
	}
	return count, nil
}
