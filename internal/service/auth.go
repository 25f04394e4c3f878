package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
)

// AuthService orchestrates login: it sits between the OAuth callback handler
// and the user repository / token service.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                   ↘ TokenService (JWT)
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult bundles the user record and the issued session token so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginGitHub completes a GitHub OAuth login: upsert the user (create on
// first login, refresh the profile on re-login) and issue a session token.
func (s *AuthService) LoginGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	first, last := splitName(ghUser.Name, ghUser.Login)

	user := &model.User{
		GitHubID:  ghUser.ID,
		Email:     ghUser.Email,
		FirstName: first,
		LastName:  last,
		AvatarURL: ghUser.AvatarURL,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		s.logger.Error("failed to upsert user on login",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		s.logger.Error("failed to generate session token",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	s.logger.Info("user authenticated",
		slog.String("userID", user.ID),
		slog.Int64("githubID", ghUser.ID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser resolves the session's user id to the stored profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// splitName turns GitHub's single display name into the first/last pair the
// profile stores. No display name → the login doubles as the first name.
func splitName(name, login string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return login, ""
	}
	if f, l, ok := strings.Cut(name, " "); ok {
		return f, strings.TrimSpace(l)
	}
	return name, ""
}
