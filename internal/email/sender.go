// internal/email/sender.go
package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Athycodz/CoMpliment-Walll/internal/config"
	"github.com/Athycodz/CoMpliment-Walll/internal/email/templates"
)

type Sender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) send(ctx context.Context, to, subject, body string) error {
	log.Printf("📧 [SEND] To: %s | Subject: %s", to, subject)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)

	// Exponential backoff: 1s, 2s, 4s → max 3 retries
	for attempt := 0; attempt < 3; attempt++ {
		if err := dialer.DialAndSend(m); err != nil {
			delay := time.Duration(1<<attempt) * time.Second
			log.Printf("❌ [ATTEMPT %d] Failed to send email to %s: %v → retrying in %v", attempt+1, to, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("email send cancelled: %w", ctx.Err())
			}
			continue
		}
		log.Printf("✅ [SUCCESS] Email sent to %s (Subject: %s)", to, subject)
		return nil
	}

	return fmt.Errorf("failed to send email to %s after 3 attempts", to)
}

// SendComplimentReceived tells a recipient a new anonymous compliment is
// waiting in their inbox.
func (s *Sender) SendComplimentReceived(ctx context.Context, to, username string) error {
	body, err := templates.RenderComplimentReceived(templates.ComplimentReceivedData{
		Username: username,
		InboxURL: s.cfg.AppBaseURL + "/inbox",
	})
	if err != nil {
		return fmt.Errorf("render compliment_received: %w", err)
	}
	return s.send(ctx, to, "💌 Someone sent you a compliment", body)
}

// SendWelcome greets a new member after signup.
func (s *Sender) SendWelcome(ctx context.Context, to, username string) error {
	body, err := templates.RenderWelcome(templates.WelcomeData{
		Username: username,
		SendURL:  s.cfg.AppBaseURL + "/send",
	})
	if err != nil {
		return fmt.Errorf("render welcome: %w", err)
	}
	return s.send(ctx, to, "Welcome to the Compliment Wall ✨", body)
}

// SendUnreadDigest reports the recipient's unread count.
func (s *Sender) SendUnreadDigest(ctx context.Context, to, username string, unread int) error {
	body, err := templates.RenderUnreadDigest(templates.UnreadDigestData{
		Username: username,
		Unread:   unread,
		InboxURL: s.cfg.AppBaseURL + "/inbox",
	})
	if err != nil {
		return fmt.Errorf("render unread_digest: %w", err)
	}
	return s.send(ctx, to, fmt.Sprintf("You have %d unread compliment(s)", unread), body)
}
