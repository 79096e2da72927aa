// Package service implements credential flows on top of the token service:
// local registration and login, refresh, logout, admin session control and
// OAuth2 provisioning.
package service

import (
	"context"
	"errors"

	"github.com/ncobase/commerce/data/repository"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/password"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/structs"
)

// AuthService handles local credentials and session control
type AuthService struct {
	repo   repository.CredentialRepository
	tokens *token.Service
	logger *logger.Logger
	hasher *password.Hasher
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.CredentialRepository, tokens *token.Service, l *logger.Logger) *AuthService {
	if l == nil {
		l = logger.StdLogger()
	}
	return &AuthService{repo: repo, tokens: tokens, logger: l, hasher: password.NewHasher(0)}
}

// Register creates a LOCAL credential and signs it in
func (s *AuthService) Register(ctx context.Context, body *structs.RegisterBody) (*structs.AuthResult, error) {
	if err := body.Validate().Err(); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, body.Email)
	switch {
	case err == nil:
		return nil, ecode.New(ecode.Conflict, ecode.AlreadyExist("email"))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(body.Password)
	if err != nil {
		return nil, err
	}

	c := &structs.Credential{
		Email:        body.Email,
		PasswordHash: hash,
		Roles:        []string{authz.RoleUser},
		Active:       true,
		Provider:     structs.ProviderLocal,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Phone:        body.Phone,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "credential registered", "user_id", c.ID, "email", c.Email)

	return s.signIn(ctx, c)
}

// Login verifies an email and password
func (s *AuthService) Login(ctx context.Context, body *structs.LoginBody) (*structs.AuthResult, error) {
	if err := body.Validate().Err(); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByEmail(ctx, body.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ecode.New(ecode.InvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Compare(c.PasswordHash, body.Password) {
		s.logger.Warn(ctx, "login rejected", "user_id", c.ID)
		return nil, ecode.New(ecode.InvalidCredentials)
	}
	if !c.Active {
		return nil, ecode.New(ecode.AccountDisabled)
	}

	return s.signIn(ctx, c)
}

func (s *AuthService) signIn(ctx context.Context, c *structs.Credential) (*structs.AuthResult, error) {
	pair, err := s.tokens.Issue(ctx, c.ID, c.Roles)
	if err != nil {
		return nil, err
	}
	return &structs.AuthResult{User: c.PublicView(), Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new access token.
// Disabled accounts lose their remaining tokens.
func (s *AuthService) Refresh(ctx context.Context, body *structs.RefreshBody) (*structs.AccessTokenResult, error) {
	if err := body.Validate().Err(); err != nil {
		return nil, err
	}

	access, err := s.tokens.Refresh(ctx, body.RefreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.Validate(ctx, access)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		if err := s.tokens.RevokeAll(ctx, c.ID); err != nil {
			s.logger.Error(ctx, "failed to revoke tokens of disabled account", "user_id", c.ID, "error", err)
		}
		return nil, ecode.New(ecode.AccountDisabled)
	}

	return &structs.AccessTokenResult{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(claims.ExpiresAt.Sub(claims.IssuedAt).Seconds()),
	}, nil
}

// Logout blacklists the presented access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, accessToken string, body *structs.LogoutBody) error {
	if err := s.tokens.Blacklist(ctx, accessToken); err != nil {
		return err
	}
	if body == nil || body.RefreshToken == "" {
		return nil
	}
	if err := s.tokens.Blacklist(ctx, body.RefreshToken); err != nil {
		if ecode.From(err).Code == ecode.ServerErr {
			return err
		}
		s.logger.Warn(ctx, "ignored invalid refresh token on logout", "error", err)
	}
	return nil
}

// Me returns the public view of the current credential
func (s *AuthService) Me(ctx context.Context, subjectID string) (*structs.PublicCredential, error) {
	c, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return c.PublicView(), nil
}

// RevokeSessions drops every live token of a credential
func (s *AuthService) RevokeSessions(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tokens.RevokeAll(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "sessions revoked", "user_id", id)
	return nil
}

// UpdateRoles replaces the role set and forces re-authentication
func (s *AuthService) UpdateRoles(ctx context.Context, id string, body *structs.RolesBody) (*structs.PublicCredential, error) {
	if err := body.Validate().Err(); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Roles = body.Roles
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeAll(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "roles updated", "user_id", id, "roles", c.Roles)
	return c.PublicView(), nil
}

// UpdateStatus activates or deactivates a credential
func (s *AuthService) UpdateStatus(ctx context.Context, id string, body *structs.StatusBody) (*structs.PublicCredential, error) {
	if err := body.Validate().Err(); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Active = *body.Active
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	if !c.Active {
		if err := s.tokens.RevokeAll(ctx, id); err != nil {
			return nil, err
		}
	}
	s.logger.Info(ctx, "status updated", "user_id", id, "active", c.Active)
	return c.PublicView(), nil
}
