package models

// User is the view model for a user on public pages.
type User struct {
	ID          uint
	Username    string
	Fullname    string
	GravatarURL string
	IsAdmin     bool
	IsSuperUser bool
}

// Wishlist is the view model for a wishlist.
type Wishlist struct {
	ID         uint
	Title      string
	Recipient  User
	Organiser  *User
	Wishes     []Wish
	ShareToken string
	CreatedAgo string
}

// Wish is the view model for a single wish.
type Wish struct {
	ID          uint
	Title       string
	Description string
	WishlistID  uint
	AddedAgo    string
}
