package sessions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/crypto"
	"github.com/inkwellhq/inkwell/apiserver/internal/users"
	"github.com/pkg/errors"
)

// Service is the specialized interface for the authentication lifecycle:
// issuing credentials through login and registration, verifying them,
// revoking them through logout, and validating them on behalf of the token
// auth filter.
type Service interface {
	// Register creates a new User and issues a credential for them.
	Register(
		ctx context.Context,
		registration inkwell.Registration,
	) (inkwell.AuthResponse, error)
	// Login verifies the given credentials and issues a bearer credential.
	Login(
		ctx context.Context,
		credentials inkwell.Credentials,
	) (inkwell.AuthResponse, error)
	// Verify returns the identity of the subject an already-validated
	// credential authenticates.
	Verify(ctx context.Context, subject string) (inkwell.VerifyResponse, error)
	// Logout revokes the given raw credential. Revoking a credential that has
	// already expired is a no-op.
	Logout(ctx context.Context, rawToken string) error
	// ChangePassword replaces the subject's password after verifying their
	// current one.
	ChangePassword(
		ctx context.Context,
		subject string,
		change inkwell.PasswordChange,
	) error
	// ValidateToken validates a raw bearer credential, including a revocation
	// check, and returns the subject it authenticates. Failures are reported
	// as *inkwell.ErrAuthentication.
	ValidateToken(ctx context.Context, rawToken string) (string, error)
}

type service struct {
	usersStore  users.Store
	revocations RevocationsStore
	tokens      TokenConfig
}

// NewService returns a specialized interface for the authentication
// lifecycle.
func NewService(
	usersStore users.Store,
	revocations RevocationsStore,
	tokens TokenConfig,
) Service {
	return &service{
		usersStore:  usersStore,
		revocations: revocations,
		tokens:      tokens,
	}
}

func (s *service) Register(
	ctx context.Context,
	registration inkwell.Registration,
) (inkwell.AuthResponse, error) {
	passwordHash, err := crypto.HashPassword(registration.Password)
	if err != nil {
		return inkwell.AuthResponse{},
			errors.Wrap(err, "error hashing password for new user")
	}
	user := inkwell.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(registration.Username),
		Email:        normalizeEmail(registration.Email),
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(registration.FullName),
		Created:      time.Now(),
	}
	if err := s.usersStore.Create(ctx, user); err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrConflict); ok {
			return inkwell.AuthResponse{}, err
		}
		return inkwell.AuthResponse{},
			errors.Wrapf(err, "error storing new user %q", user.ID)
	}
	token, _, err := MintToken(s.tokens, user.ID)
	if err != nil {
		return inkwell.AuthResponse{},
			errors.Wrapf(err, "error minting token for new user %q", user.ID)
	}
	return inkwell.AuthResponse{
		User:    user,
		Token:   token,
		Message: "User registered successfully",
	}, nil
}

func (s *service) Login(
	ctx context.Context,
	credentials inkwell.Credentials,
) (inkwell.AuthResponse, error) {
	user, err := s.usersStore.GetByEmail(
		ctx,
		normalizeEmail(credentials.Email),
	)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			// Indistinguishable from a wrong password so that login probes can't
			// enumerate accounts.
			return inkwell.AuthResponse{},
				inkwell.NewErrBadRequest("Invalid credentials")
		}
		return inkwell.AuthResponse{},
			errors.Wrap(err, "error retrieving user from store")
	}
	if !crypto.CheckPassword(credentials.Password, user.PasswordHash) {
		return inkwell.AuthResponse{},
			inkwell.NewErrBadRequest("Invalid credentials")
	}
	token, _, err := MintToken(s.tokens, user.ID)
	if err != nil {
		return inkwell.AuthResponse{},
			errors.Wrapf(err, "error minting token for user %q", user.ID)
	}
	return inkwell.AuthResponse{
		User:    user,
		Token:   token,
		Message: "Login successful",
	}, nil
}

func (s *service) Verify(
	ctx context.Context,
	subject string,
) (inkwell.VerifyResponse, error) {
	user, err := s.usersStore.Get(ctx, subject)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			// There should never be a valid credential for a user that doesn't
			// exist.
			return inkwell.VerifyResponse{},
				inkwell.NewErrAuthentication("Invalid token")
		}
		return inkwell.VerifyResponse{},
			errors.Wrapf(err, "error retrieving user %q from store", subject)
	}
	return inkwell.VerifyResponse{
		Data: inkwell.VerifyData{
			User: user,
		},
	}, nil
}

func (s *service) Logout(ctx context.Context, rawToken string) error {
	_, expires, err := ParseToken(s.tokens, rawToken)
	if err != nil {
		// An expired or otherwise invalid credential needs no revocation.
		return nil
	}
	if err := s.revocations.Revoke(
		ctx,
		crypto.Digest(rawToken),
		expires,
	); err != nil {
		return errors.Wrap(err, "error revoking token")
	}
	return nil
}

func (s *service) ChangePassword(
	ctx context.Context,
	subject string,
	change inkwell.PasswordChange,
) error {
	user, err := s.usersStore.Get(ctx, subject)
	if err != nil {
		return errors.Wrapf(err, "error retrieving user %q from store", subject)
	}
	if !crypto.CheckPassword(change.CurrentPassword, user.PasswordHash) {
		return inkwell.NewErrBadRequest("Current password is incorrect")
	}
	passwordHash, err := crypto.HashPassword(change.NewPassword)
	if err != nil {
		return errors.Wrap(err, "error hashing new password")
	}
	if err := s.usersStore.UpdatePassword(
		ctx,
		subject,
		passwordHash,
	); err != nil {
		return errors.Wrapf(err, "error updating password for user %q", subject)
	}
	return nil
}

func (s *service) ValidateToken(
	ctx context.Context,
	rawToken string,
) (string, error) {
	subject, _, err := ParseToken(s.tokens, rawToken)
	if err != nil {
		return "", err
	}
	revoked, err := s.revocations.IsRevoked(ctx, crypto.Digest(rawToken))
	if err != nil {
		return "", errors.Wrap(err, "error checking token revocation")
	}
	if revoked {
		return "", inkwell.NewErrAuthentication("Token revoked")
	}
	return subject, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
