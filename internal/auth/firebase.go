// internal/auth/firebase.go
package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Provider wraps the Firebase identity provider: account creation at signup
// and ID-token verification for every authenticated request. Sessions
// themselves live with Firebase; this service only ever sees bearer tokens.
type Provider struct {
	app    *firebase.App
	client *firebaseauth.Client
}

func NewProvider(ctx context.Context, credentialsJSON []byte) (*Provider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{}, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth client init failed: %w", err)
	}

	return &Provider{app: app, client: client}, nil
}

// App exposes the underlying Firebase app so the push client can share one
// credential set.
func (p *Provider) App() *firebase.App {
	return p.app
}

// VerifyToken validates a Firebase ID token and returns the provider UID.
func (p *Provider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	return token.UID, nil
}

// CreateAccount registers an email/password account with the identity
// provider and returns the issued UID. Profile fields (username, age) are
// persisted separately by the caller, keyed by that UID.
func (p *Provider) CreateAccount(ctx context.Context, email, password, username string) (string, error) {
	params := (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(username)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("account creation failed: %w", err)
	}
	return record.UID, nil
}
