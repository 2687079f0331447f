package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type SeedTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
}

func (s *SeedTestSuite) SetupTest() {
	client, err := New(":memory:")
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *SeedTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *SeedTestSuite) TestSeedEmptyDatabase() {
	loaded, err := s.client.Seed(s.ctx, false)
	s.Require().NoError(err)
	s.True(loaded)

	alice, err := s.client.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("Alice Martin", alice.Fullname)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(alice.PasswordHash), []byte("secret")))

	bob, err := s.client.GetUserByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.True(bob.IsAdmin)

	sue, err := s.client.GetUserByUsername(s.ctx, "sue")
	s.Require().NoError(err)
	s.True(sue.IsSuperUser)

	wishlists, err := s.client.GetWishlistsByRecipient(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(wishlists, 1)
	s.Equal("Birthday", wishlists[0].Title)

	wishlist, err := s.client.GetWishlistByID(s.ctx, wishlists[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(wishlist.Organiser)
	s.Equal("bob", wishlist.Organiser.Username)

	titles := make([]string, 0, len(wishlist.Wishes))
	for _, wish := range wishlist.Wishes {
		titles = append(titles, wish.Title)
	}
	s.ElementsMatch([]string{"Book", "Wool socks"}, titles)
}

func (s *SeedTestSuite) TestSeedSkipsWhenUsersExist() {
	s.Require().NoError(s.client.CreateUser(s.ctx, &User{Username: "existing", PasswordHash: "x"}))

	loaded, err := s.client.Seed(s.ctx, false)
	s.Require().NoError(err)
	s.False(loaded)

	count, err := s.client.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count, "existing data must not be touched")

	_, err = s.client.GetUserByUsername(s.ctx, "alice")
	s.Error(err)
}

func (s *SeedTestSuite) TestSeedForceReloads() {
	s.Require().NoError(s.client.CreateUser(s.ctx, &User{Username: "existing", PasswordHash: "x"}))

	loaded, err := s.client.Seed(s.ctx, true)
	s.Require().NoError(err)
	s.True(loaded)

	_, err = s.client.GetUserByUsername(s.ctx, "existing")
	s.Error(err, "force seeding replaces existing data")

	_, err = s.client.GetUserByUsername(s.ctx, "alice")
	s.NoError(err)
}

func (s *SeedTestSuite) TestSeedIdempotent() {
	loaded, err := s.client.Seed(s.ctx, false)
	s.Require().NoError(err)
	s.True(loaded)

	loaded, err = s.client.Seed(s.ctx, false)
	s.Require().NoError(err)
	s.False(loaded)

	count, err := s.client.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}

func TestSeedTestSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}
