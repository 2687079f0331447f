package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"

	"github.com/charmbracelet/log"
	mail "github.com/xhit/go-simple-mail/v2"

	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
)

// NotificationService sends email notices to wishlist recipients.
type NotificationService struct {
	config *config.EmailConfig
}

// New creates a new email notification service.
func New(cfg *config.EmailConfig) *NotificationService {
	return &NotificationService{
		config: cfg,
	}
}

var wishAddedTmpl = template.Must(template.New("wish_added").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <p>Hi {{.Name}},</p>
    <p>A new wish was added to your wishlist <strong>{{.WishlistTitle}}</strong>:</p>
    <p style="margin-left: 1em;"><strong>{{.WishTitle}}</strong></p>
    <p>— Wishwell</p>
</body>
</html>
`))

// SendWishAdded notifies the recipient that a wish was added to their
// wishlist. It is a no-op when notifications are disabled or the
// recipient has no email address.
func (n *NotificationService) SendWishAdded(recipient *database.User, wishlistTitle, wishTitle string) error {
	if n.config == nil || !n.config.Enabled {
		log.Debug("email notifications are disabled, skipping notification")
		return nil
	}
	if recipient.Email == "" {
		log.Warn("recipient has no email address, skipping notification", "username", recipient.Username)
		return nil
	}

	var body bytes.Buffer
	err := wishAddedTmpl.Execute(&body, map[string]string{
		"Name":          recipient.Fullname,
		"WishlistTitle": wishlistTitle,
		"WishTitle":     wishTitle,
	})
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	server := mail.NewSMTPClient()
	server.Host = n.config.SMTPHost
	server.Port = n.config.SMTPPort
	server.Username = n.config.Username
	server.Password = n.config.Password
	if n.config.UseTLS {
		server.Encryption = mail.EncryptionSTARTTLS
	}
	server.TLSConfig = &tls.Config{
		ServerName:         n.config.SMTPHost,
		InsecureSkipVerify: n.config.InsecureSkipVerify, //nolint:gosec
	}

	client, err := server.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	msg := mail.NewMSG()
	msg.SetFrom(fmt.Sprintf("%s <%s>", n.config.FromName, n.config.FromEmail)).
		AddTo(recipient.Email).
		SetSubject(fmt.Sprintf("[Wishwell] New wish on %q", wishlistTitle))
	msg.SetBody(mail.TextHTML, body.String())

	if err := msg.Send(client); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("sent wish notification", "to", recipient.Email, "wishlist", wishlistTitle)
	return nil
}
