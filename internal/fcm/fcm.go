// internal/fcm/fcm.go
package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Client sends compliment alerts over Firebase Cloud Messaging. It shares the
// identity provider's Firebase app so there is one credential set.
type Client struct {
	client *messaging.Client
}

func NewClient(ctx context.Context, app *firebase.App) (*Client, error) {
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("messaging client init failed: %w", err)
	}
	return &Client{client: messagingClient}, nil
}

func intPtr(i int) *int {
	return &i
}

// SendComplimentAlert pushes the "new compliment" notification to every
// registered device of one recipient. The payload never names a sender;
// there is none to name.
func (f *Client) SendComplimentAlert(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	badge := intPtr(1)
	data := map[string]string{"type": "compliment_received", "route": "/inbox"}

	var messages []*messaging.Message
	for _, token := range tokens {
		messages = append(messages, &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Someone appreciates you ✨",
				Body:  "You just received a new anonymous compliment.",
			},
			Data: data,
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
						Badge: badge,
					},
				},
			},
			Android: &messaging.AndroidConfig{
				Notification: &messaging.AndroidNotification{
					Sound: "default",
				},
				Priority: "high",
			},
		})
	}

	// SendEach caps at 500 messages per call.
	const batchSize = 500
	for i := 0; i < len(messages); i += batchSize {
		end := i + batchSize
		if end > len(messages) {
			end = len(messages)
		}

		resp, err := f.client.SendEach(ctx, messages[i:end])
		if err != nil {
			return fmt.Errorf("FCM batch[%d:%d] failed: %w", i, end, err)
		}
		for j, r := range resp.Responses {
			if !r.Success {
				log.Printf("⚠️ FCM token %s failed: %v", maskToken(tokens[i+j]), r.Error)
			}
		}
	}
	return nil
}

// maskToken hides all but last 6 chars for logging safety
func maskToken(token string) string {
	if len(token) <= 6 {
		return token
	}
	return "..." + token[len(token)-6:]
}
