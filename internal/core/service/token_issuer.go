package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies the bearer tokens used by every protected
// endpoint. The secret is injected at construction; there is no package
// level default.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints an HS256 token carrying the user's identity and role.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := t.now().UTC()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Verify parses and validates a token. Signature mismatches, structural
// corruption, and expiry all collapse into domain.ErrInvalidToken so a
// caller learns nothing about why a token was rejected.
func (t *TokenIssuer) Verify(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Claims{
		UserID: userID,
		Email:  email,
		Role:   domain.Role(role),
	}, nil
}
