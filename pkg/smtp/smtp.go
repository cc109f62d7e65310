package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/241luca/soccer-manager/pkg/logger"
)

// Client is the outgoing mail client.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendInvitationEmail sends an organization invitation with the redeem link.
// Sending is best-effort; failures are logged.
func (c *Client) SendInvitationEmail(to, organizationName, token string) {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	link := fmt.Sprintf("%s/register?invitation=%s", viper.GetString("service.base-url"), token)

	msg.SetHeader("Message-ID", generateMessageID(domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Invitation to join %s", organizationName))
	msg.SetBody("text/plain", fmt.Sprintf("You have been invited to join %s. Open %s to accept the invitation. The invitation expires in 7 days.", organizationName, link))
	msg.AddAlternative("text/html", fmt.Sprintf(`<p>You have been invited to join <b>%s</b>.</p><p><a href="%s">Accept invitation</a></p><p>The invitation expires in 7 days.</p>`, organizationName, link))

	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Error(err)
		return
	}

	logger.Log.Infof("invitation email sent to %s", to)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
