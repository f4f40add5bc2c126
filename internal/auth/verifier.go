// Package auth verifies bearer credentials against the external identity
// provider. The API never issues or refreshes tokens itself.
package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Verifier turns a bearer credential into a verified subject ID.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase Auth ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes a Firebase app and returns a token
// verifier. credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify validates the ID token and returns the subject UID.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	return token.UID, nil
}
