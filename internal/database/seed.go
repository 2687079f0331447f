package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"
)

//go:embed fixtures.yml
var fixtures []byte

type seedWish struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type seedWishlist struct {
	Title     string     `yaml:"title"`
	Recipient string     `yaml:"recipient"`
	Organiser string     `yaml:"organiser"`
	Wishes    []seedWish `yaml:"wishes"`
}

type seedUser struct {
	Username    string `yaml:"username"`
	Fullname    string `yaml:"fullname"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	IsAdmin     bool   `yaml:"is_admin"`
	IsSuperUser bool   `yaml:"is_super_user"`
}

type seedData struct {
	Users     []seedUser     `yaml:"users"`
	Wishlists []seedWishlist `yaml:"wishlists"`
}

// Seed loads the bundled fixture data. It only runs against an empty user
// table: as soon as a single user exists the store is considered live and
// nothing is touched. With force set the guard is skipped and all model
// data is replaced. Returns whether the fixtures were loaded.
func (c *Client) Seed(ctx context.Context, force bool) (bool, error) {
	count, err := c.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 && !force {
		log.Debug("skipping seed, users already exist", "count", count)
		return false, nil
	}

	var data seedData
	if err := yaml.Unmarshal(fixtures, &data); err != nil {
		return false, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	// The only place in the system where bulk delete-all occurs.
	db := c.db.WithContext(ctx)
	for _, model := range []any{&Wish{}, &Wishlist{}, &User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return false, fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users := make(map[string]*User, len(data.Users))
	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
		}
		user := &User{
			Username:     u.Username,
			Fullname:     u.Fullname,
			Email:        u.Email,
			PasswordHash: string(hash),
			IsAdmin:      u.IsAdmin,
			IsSuperUser:  u.IsSuperUser,
		}
		if err := c.CreateUser(ctx, user); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
		users[u.Username] = user
	}

	for _, wl := range data.Wishlists {
		recipient, ok := users[wl.Recipient]
		if !ok {
			return false, fmt.Errorf("fixture wishlist %q references unknown recipient %q", wl.Title, wl.Recipient)
		}
		wishlist := &Wishlist{
			Title:       wl.Title,
			RecipientID: recipient.ID,
		}
		if wl.Organiser != "" {
			organiser, ok := users[wl.Organiser]
			if !ok {
				return false, fmt.Errorf("fixture wishlist %q references unknown organiser %q", wl.Title, wl.Organiser)
			}
			wishlist.OrganiserID = &organiser.ID
		}
		if err := c.CreateWishlist(ctx, wishlist); err != nil {
			return false, fmt.Errorf("failed to seed wishlist %s: %w", wl.Title, err)
		}
		for _, w := range wl.Wishes {
			wish := &Wish{
				Title:       w.Title,
				Description: w.Description,
				WishlistID:  wishlist.ID,
			}
			if err := c.CreateWish(ctx, wish); err != nil {
				return false, fmt.Errorf("failed to seed wish %s: %w", w.Title, err)
			}
		}
	}

	log.Info("loaded seed data", "users", len(data.Users), "wishlists", len(data.Wishlists))
	return true, nil
}
