package token

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/dtroode/portfolio/internal/model"
)

type firebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

var _ model.IdentityVerifier = (*FirebaseVerifier)(nil)

// FirebaseVerifier accepts Firebase ID tokens. Only the configured uid is an administrator.
type FirebaseVerifier struct {
	client   firebaseAuth
	adminUID string
}

// NewFirebaseVerifier initializes the Firebase Admin SDK from a service account file.
func NewFirebaseVerifier(ctx context.Context, credentialsPath, adminUID string) (*FirebaseVerifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}

	return newFirebaseVerifier(client, adminUID), nil
}

func newFirebaseVerifier(client firebaseAuth, adminUID string) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, adminUID: adminUID}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (model.Principal, error) {
	decoded, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	p := model.Principal{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		p.Email = email
	}
	p.Admin = v.adminUID != "" && p.UID == v.adminUID

	return p, nil
}
