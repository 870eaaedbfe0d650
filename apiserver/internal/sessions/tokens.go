package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwellhq/inkwell"
	"github.com/pkg/errors"
)

// TokenConfig carries everything needed to mint and validate bearer
// credentials. Tokens are HS256 JWTs whose subject is the authenticated
// user's ID.
type TokenConfig struct {
	SigningKey []byte
	Issuer     string
	TTL        time.Duration
}

// MintToken issues a signed credential for the given user, returning the raw
// token and its expiry.
func MintToken(config TokenConfig, userID string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(config.TTL)
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Issuer:    config.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	)
	signed, err := token.SignedString(config.SigningKey)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "error signing token")
	}
	return signed, expires, nil
}

// ParseToken validates a raw credential's signature and expiry and returns
// the subject and expiry it carries. Expired credentials are rejected with
// the distinguished "Token expired" message; all other failures are reported
// indistinguishably from one another.
func ParseToken(
	config TokenConfig,
	rawToken string,
) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf(
					"unexpected signing method %q",
					token.Method.Alg(),
				)
			}
			return config.SigningKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{},
				inkwell.NewErrAuthentication(inkwell.TokenExpiredMessage)
		}
		return "", time.Time{}, inkwell.NewErrAuthentication("Invalid token")
	}
	if claims.Subject == "" {
		return "", time.Time{}, inkwell.NewErrAuthentication("Invalid token")
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}
