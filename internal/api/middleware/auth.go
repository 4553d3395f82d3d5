package middleware

import (
	"context"
	"errors"
	"net/http"
	"qna_board/internal/common"
	"qna_board/internal/common/security"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"
	"qna_board/internal/platform/session"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	IdentityCtxKey contextKey = "identity"
	TokenCtxKey    contextKey = "token"
)

// Rejection messages. Identity-resolution failures share one generic message
// so a caller cannot tell a revoked token from a deleted account.
const (
	msgNoToken      = "No token, authorization denied"
	msgTokenInvalid = "Token is not valid"
	msgTokenExpired = "Token has expired"
	msgNotAuthed    = "Not authorized to access this route"
	msgNotAdmin     = "Not authorized as admin"
)

// Auth carries the dependencies of the authentication middleware. The
// identity attached to the context is re-read from the user store on every
// request; claims decide only WHO to look up, never what they may do. A
// privilege revoked in the store therefore takes effect on the next request,
// token or no token.
type Auth struct {
	userRepo repository.UserRepository
	sessions session.Store // nil disables the allowlist cross-check
}

func NewAuth(userRepo repository.UserRepository, sessions session.Store) *Auth {
	return &Auth{userRepo: userRepo, sessions: sessions}
}

// Authenticator runs below jwtauth.Verifier, which has already parsed and
// verified whatever token the request carried and left the outcome in the
// request context.
func (a *Auth) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil || token == nil {
			switch {
			case errors.Is(err, jwtauth.ErrNoTokenFound):
				common.RespondWithError(w, http.StatusUnauthorized, msgNoToken)
			case errors.Is(err, jwtauth.ErrExpired):
				common.RespondWithError(w, http.StatusUnauthorized, msgTokenExpired)
			default:
				common.RespondWithError(w, http.StatusUnauthorized, msgTokenInvalid)
			}
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		rawToken := jwtauth.TokenFromHeader(r)

		if a.sessions != nil {
			listed, err := a.sessions.Contains(r.Context(), userID, rawToken)
			if err != nil || !listed {
				// Fail closed on store errors; a logged-out token lands here too.
				common.RespondWithError(w, http.StatusUnauthorized, msgNotAuthed)
				return
			}
		}

		user, err := a.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, msgNotAuthed)
			return
		}
		user.HashedPassword = ""

		ctx := context.WithValue(r.Context(), IdentityCtxKey, user)
		ctx = context.WithValue(ctx, TokenCtxKey, rawToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates a route on the admin flag of the resolved identity. It
// must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok || !identity.IsAdmin {
			common.RespondWithError(w, http.StatusForbidden, msgNotAdmin)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the resolved identity from context
func GetIdentityFromContext(ctx context.Context) (*model.User, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(*model.User)
	return identity, ok
}

// Helper to get the raw bearer token from context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok
}
