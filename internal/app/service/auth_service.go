package service

import (
	"context"
	"errors"
	"fmt"
	"qna_board/internal/common"
	"qna_board/internal/common/security"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"
	"qna_board/internal/platform/session"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo     repository.UserRepository
	tokenService *security.TokenService
	sessions     session.Store // nil when the allowlist is disabled
}

func NewAuthService(userRepo repository.UserRepository, tokenService *security.TokenService, sessions session.Store) *AuthService {
	return &AuthService{userRepo: userRepo, tokenService: tokenService, sessions: sessions}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a username/email collision
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueFor(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	return s.issueFor(ctx, user)
}

// Logout removes the presented token from the user's allowlist. Without a
// session store there is nothing to invalidate server-side.
func (s *AuthService) Logout(ctx context.Context, userID, token string) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Remove(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return nil
}

func (s *AuthService) issueFor(ctx context.Context, user *model.User) (*AuthResponse, error) {
	token, err := s.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if s.sessions != nil {
		if err := s.sessions.Add(ctx, user.ID, token); err != nil {
			return nil, fmt.Errorf("failed to register token: %w", err)
		}
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{User: user, Token: token}, nil
}
