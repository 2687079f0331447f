// Package mock provides an in-memory implementation of database.DB for testing.
package mock

import (
	"context"
	"sync"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/jon4hz/wishwell/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	wishlists      map[uint]*database.Wishlist
	nextWishlistID uint

	wishes     map[uint]*database.Wish
	nextWishID uint

	// Error simulation
	CreateUserError         error
	GetUserByUsernameError  error
	GetAllUsersError        error
	GetAllWishlistsError    error
	GetWishlistByIDError    error
	GetWishByIDError        error
	CreateWishError         error
	DeleteWishlistError     error
	SeedError               error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:          make(map[uint]*database.User),
		nextUserID:     1,
		wishlists:      make(map[uint]*database.Wishlist),
		nextWishlistID: 1,
		wishes:         make(map[uint]*database.Wish),
		nextWishID:     1,
	}
}

func (m *MockDB) CreateUser(_ context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user
	return nil
}

func (m *MockDB) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetAllUsers(_ context.Context) ([]database.User, error) {
	if m.GetAllUsersError != nil {
		return nil, m.GetAllUsersError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *MockDB) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MockDB) CreateWishlist(_ context.Context, wishlist *database.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wishlist.ID = m.nextWishlistID
	m.nextWishlistID++
	if recipient, ok := m.users[wishlist.RecipientID]; ok {
		wishlist.Recipient = *recipient
	}
	m.wishlists[wishlist.ID] = wishlist
	return nil
}

func (m *MockDB) GetWishlistByID(_ context.Context, id uint) (*database.Wishlist, error) {
	if m.GetWishlistByIDError != nil {
		return nil, m.GetWishlistByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wishlist, ok := m.wishlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	wl := *wishlist
	wl.Wishes = m.wishesForList(id)
	return &wl, nil
}

func (m *MockDB) GetWishlistByShareToken(_ context.Context, token string) (*database.Wishlist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, wishlist := range m.wishlists {
		if wishlist.ShareToken == token {
			wl := *wishlist
			wl.Wishes = m.wishesForList(wl.ID)
			return &wl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetWishlistsByRecipient(_ context.Context, recipientID uint) ([]database.Wishlist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wishlists []database.Wishlist
	for _, wishlist := range m.wishlists {
		if wishlist.RecipientID == recipientID {
			wl := *wishlist
			wl.Wishes = m.wishesForList(wl.ID)
			wishlists = append(wishlists, wl)
		}
	}
	return wishlists, nil
}

func (m *MockDB) GetAllWishlists(_ context.Context) ([]database.Wishlist, error) {
	if m.GetAllWishlistsError != nil {
		return nil, m.GetAllWishlistsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wishlists := make([]database.Wishlist, 0, len(m.wishlists))
	for _, wishlist := range m.wishlists {
		wishlists = append(wishlists, *wishlist)
	}
	return wishlists, nil
}

func (m *MockDB) DeleteWishlist(_ context.Context, id uint) error {
	if m.DeleteWishlistError != nil {
		return m.DeleteWishlistError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wishlists, id)
	for wishID, wish := range m.wishes {
		if wish.WishlistID == id {
			delete(m.wishes, wishID)
		}
	}
	return nil
}

func (m *MockDB) CountWishlists(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.wishlists)), nil
}

func (m *MockDB) CreateWish(_ context.Context, wish *database.Wish) error {
	if m.CreateWishError != nil {
		return m.CreateWishError
	}
	if wish.Title == "" {
		return database.ErrTitleRequired
	}
	if utf8.RuneCountInString(wish.Description) > database.MaxDescriptionLen {
		return database.ErrDescriptionTooLong
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wish.ID = m.nextWishID
	m.nextWishID++
	m.wishes[wish.ID] = wish
	return nil
}

func (m *MockDB) GetWishByID(_ context.Context, id uint) (*database.Wish, error) {
	if m.GetWishByIDError != nil {
		return nil, m.GetWishByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wish, ok := m.wishes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	w := *wish
	return &w, nil
}

func (m *MockDB) GetAllWishes(_ context.Context) ([]database.Wish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wishes := make([]database.Wish, 0, len(m.wishes))
	for _, wish := range m.wishes {
		wishes = append(wishes, *wish)
	}
	return wishes, nil
}

func (m *MockDB) UpdateWish(_ context.Context, wish *database.Wish) error {
	if wish.Title == "" {
		return database.ErrTitleRequired
	}
	if utf8.RuneCountInString(wish.Description) > database.MaxDescriptionLen {
		return database.ErrDescriptionTooLong
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wishes[wish.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.wishes[wish.ID] = wish
	return nil
}

func (m *MockDB) DeleteWish(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wishes, id)
	return nil
}

func (m *MockDB) CountWishes(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.wishes)), nil
}

func (m *MockDB) Seed(_ context.Context, _ bool) (bool, error) {
	if m.SeedError != nil {
		return false, m.SeedError
	}
	return false, nil
}

func (m *MockDB) Close() error {
	return nil
}

// wishesForList must be called with the lock held.
func (m *MockDB) wishesForList(id uint) []database.Wish {
	var wishes []database.Wish
	for _, wish := range m.wishes {
		if wish.WishlistID == id {
			wishes = append(wishes, *wish)
		}
	}
	return wishes
}
