package security

import (
	"errors"
	"time"
	"qna_board/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the bearer tokens used by the API.
// Verification is pure computation: signature and expiry are checked locally,
// never against the database. Identity and privileges are re-resolved by the
// auth middleware precisely because they are NOT trusted from these claims.
type TokenService struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

// TokenClaims is the decoded content of a verified token.
type TokenClaims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func NewTokenService(key []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		tokenAuth: jwtauth.New("HS256", key, nil),
		ttl:       ttl,
	}
}

// JWTAuth exposes the underlying verifier for jwtauth.Verifier middleware.
func (s *TokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}
	_, tokenString, err := s.tokenAuth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry of tokenString. It fails with
// common.ErrTokenExpired when the token is past its expiry and with
// common.ErrTokenInvalid for any other defect (bad signature, malformed
// input, missing claims).
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwtauth.VerifyToken(s.tokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	private := token.PrivateClaims()
	userID, ok := private["user_id"].(string)
	if !ok || userID == "" {
		return nil, common.ErrTokenInvalid
	}
	email, _ := private["email"].(string)

	return &TokenClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}, nil
}

// Helpers to extract claims placed in the request context by jwtauth.Verifier.
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
