package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jon4hz/wishwell/internal/database"
)

// ErrInvalidCredentials is returned when the username/password pair does
// not match a stored user.
var ErrInvalidCredentials = errors.New("invalid username or password")

const sessionUserKey = "username"

// Provider authenticates users against the local user table.
// The session only ever stores the username: admin and superuser status
// are re-read from the database on every request, never cached.
type Provider struct {
	db database.DB
}

// NewProvider creates a credential provider backed by the given database.
func NewProvider(db database.DB) *Provider {
	return &Provider{db: db}
}

// Authenticate verifies the username and password, returning the user if valid.
func (p *Provider) Authenticate(ctx context.Context, username, password string) (*database.User, error) {
	user, err := p.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginForm renders the login page.
func (p *Provider) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles the login form submission and establishes a session.
func (p *Provider) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Username and password are required"})
		return
	}

	user, err := p.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		log.Warn("failed login attempt", "username", username)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session.
func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// currentUser resolves the session's username against the database.
func (p *Provider) currentUser(c *gin.Context) (*database.User, error) {
	session := sessions.Default(c)
	username, ok := session.Get(sessionUserKey).(string)
	if !ok || username == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := p.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
