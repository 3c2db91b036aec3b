package gmailclient

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a plain text email.
// Sends are serialised and spaced at least EMAIL_INTERVAL apart to respect Gmail API rate limits.
func (c *Client) SendEmail(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if elapsed := time.Since(c.lastSendTime); elapsed < EMAIL_INTERVAL {
			time.Sleep(EMAIL_INTERVAL - elapsed)
		}
	}

	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildMessage(c.sender, to, subject, body))),
	}

	if _, err := c.service.Users.Messages.Send("me", gmailMessage).Context(c.ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// buildMessage renders an RFC 2822 message
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
