package models

import (
	"github.com/mergestat/timediff"
	"github.com/samber/lo"

	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
	"github.com/jon4hz/wishwell/internal/gravatar"
)

// ToUser converts a database user to its view model.
func ToUser(u *database.User, gravatarCfg *config.GravatarConfig) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		Fullname:    u.Fullname,
		GravatarURL: gravatar.GenerateURL(u.Email, gravatarCfg),
		IsAdmin:     u.IsAdmin,
		IsSuperUser: u.IsSuperUser,
	}
}

// ToUsers converts a slice of database users.
func ToUsers(users []database.User, gravatarCfg *config.GravatarConfig) []User {
	return lo.Map(users, func(u database.User, _ int) User {
		return ToUser(&u, gravatarCfg)
	})
}

// ToWishlist converts a database wishlist, including its loaded
// associations, to its view model.
func ToWishlist(wl *database.Wishlist, gravatarCfg *config.GravatarConfig) Wishlist {
	out := Wishlist{
		ID:         wl.ID,
		Title:      wl.Title,
		Recipient:  ToUser(&wl.Recipient, gravatarCfg),
		Wishes:     ToWishes(wl.Wishes),
		ShareToken: wl.ShareToken,
		CreatedAgo: timediff.TimeDiff(wl.CreatedAt),
	}
	if wl.Organiser != nil {
		organiser := ToUser(wl.Organiser, gravatarCfg)
		out.Organiser = &organiser
	}
	return out
}

// ToWishlists converts a slice of database wishlists.
func ToWishlists(wishlists []database.Wishlist, gravatarCfg *config.GravatarConfig) []Wishlist {
	return lo.Map(wishlists, func(wl database.Wishlist, _ int) Wishlist {
		return ToWishlist(&wl, gravatarCfg)
	})
}

// ToWish converts a database wish to its view model.
func ToWish(w *database.Wish) Wish {
	return Wish{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		WishlistID:  w.WishlistID,
		AddedAgo:    timediff.TimeDiff(w.CreatedAt),
	}
}

// ToWishes converts a slice of database wishes.
func ToWishes(wishes []database.Wish) []Wish {
	return lo.Map(wishes, func(w database.Wish, _ int) Wish {
		return ToWish(&w)
	})
}
