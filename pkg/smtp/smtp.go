package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Client is the mail client used for registration confirmations and final results.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendRegistrationConfirmed notifies a user that an organizer confirmed their
// registration for a hackathon.
func (c *Client) SendRegistrationConfirmed(to string, hackathonName string) error {
	msg := c.newMessage(to, fmt.Sprintf("Registration confirmed: %s", hackathonName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your registration for %s has been confirmed by the organizer.", hackathonName))

	return c.dialer.DialAndSend(msg)
}

// SendResults mails the final leaderboard workbook to the organizer.
func (c *Client) SendResults(to string, hackathonName string, results *bytes.Buffer) error {
	msg := c.newMessage(to, fmt.Sprintf("Final results: %s", hackathonName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s has concluded. The final leaderboard is attached.", hackathonName))
	msg.Attach("leaderboard.xlsx", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(results.Bytes())
		return err
	}))

	return c.dialer.DialAndSend(msg)
}

func (c *Client) newMessage(to string, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(viper.GetString("service.smtp.domain")))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
