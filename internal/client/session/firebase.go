package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

var _ Authenticator = (*FirebaseAuthenticator)(nil)

// FirebaseAuthenticator signs in with Firebase email/password accounts through
// the Identity Toolkit API. The returned ID token is accepted by the backend
// when it runs with the firebase auth provider.
type FirebaseAuthenticator struct {
	service *identitytoolkit.Service
	timeout time.Duration
	now     func() time.Time
}

// NewFirebaseAuthenticator builds an Identity Toolkit client keyed by apiKey.
// Extra opts are appended after the key, e.g. option.WithEndpoint.
func NewFirebaseAuthenticator(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*FirebaseAuthenticator, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}

	return &FirebaseAuthenticator{
		service: service,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

func (f *FirebaseAuthenticator) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		netErr := &clienterr.NetworkError{Op: "firebase sign-in", Err: err}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			netErr.Status = apiErr.Code
		}
		return Identity{}, netErr
	}

	identity := Identity{
		Token:        resp.IdToken,
		RefreshToken: resp.RefreshToken,
		UID:          resp.LocalId,
		Email:        resp.Email,
	}
	if resp.ExpiresIn > 0 {
		identity.ExpiresAt = f.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return identity, nil
}

// SignOut is local for Firebase sessions; ID tokens simply expire.
func (f *FirebaseAuthenticator) SignOut(context.Context, Identity) error {
	return nil
}
