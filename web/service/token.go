package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token failures. Both leave the request unauthenticated; a token that fails
// either check is never accepted.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenService issues and validates the stateless HS256 artifacts of the JWT
// login mode. The signing key is fixed at construction and never rotated.
type TokenService struct {
	secret []byte
	expire time.Duration
}

func NewTokenService(secret []byte, expire time.Duration) *TokenService {
	return &TokenService{secret: secret, expire: expire}
}

// Issue signs a compact token carrying the user's loginId, issued-at and
// expiry claims.
func (s *TokenService) Issue(loginId string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"loginId": loginId,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies the signature and expiry and returns the loginId claim.
// Expiry is checked before the claim is trusted, regardless of how the token
// was signed.
func (s *TokenService) Parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	loginId, ok := claims["loginId"].(string)
	if !ok || loginId == "" {
		return "", ErrInvalidToken
	}
	return loginId, nil
}
