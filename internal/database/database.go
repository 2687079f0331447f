package database

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// DB defines the interface for database operations.
type DB interface {
	// User management
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Wishlist management
	CreateWishlist(ctx context.Context, wishlist *Wishlist) error
	GetWishlistByID(ctx context.Context, id uint) (*Wishlist, error)
	GetWishlistByShareToken(ctx context.Context, token string) (*Wishlist, error)
	GetWishlistsByRecipient(ctx context.Context, recipientID uint) ([]Wishlist, error)
	GetAllWishlists(ctx context.Context) ([]Wishlist, error)
	DeleteWishlist(ctx context.Context, id uint) error
	CountWishlists(ctx context.Context) (int64, error)

	// Wish management
	CreateWish(ctx context.Context, wish *Wish) error
	GetWishByID(ctx context.Context, id uint) (*Wish, error)
	GetAllWishes(ctx context.Context) ([]Wish, error)
	UpdateWish(ctx context.Context, wish *Wish) error
	DeleteWish(ctx context.Context, id uint) error
	CountWishes(ctx context.Context) (int64, error)

	// Bootstrap
	Seed(ctx context.Context, force bool) (bool, error)

	// Utility
	Close() error
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Wishlist{},
		&Wish{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Gorm exposes the underlying gorm handle for generic CRUD resources.
func (c *Client) Gorm() *gorm.DB {
	return c.db
}

// Close closes the database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
