package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ncobase/commerce/data/repository"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/nanoid"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/oauth"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/structs"
)

// Provisioner finds or creates credentials for OAuth2 sign-ins
type Provisioner struct {
	repo   repository.CredentialRepository
	tokens *token.Service
	logger *logger.Logger
}

// NewProvisioner creates a new provisioner
func NewProvisioner(repo repository.CredentialRepository, tokens *token.Service, l *logger.Logger) *Provisioner {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Provisioner{repo: repo, tokens: tokens, logger: l}
}

// Provision links profile to a credential and issues tokens for it.
// Existing records only gain values for empty provider fields.
func (p *Provisioner) Provision(ctx context.Context, provider string, profile *oauth.Profile) (*structs.Credential, *token.Pair, error) {
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		return nil, nil, ecode.New(ecode.MissingProviderEmail)
	}
	prov := structs.ProviderFromName(provider)

	c, err := p.findOrCreate(ctx, prov, profile)
	if err != nil {
		return nil, nil, err
	}

	if !c.Active {
		return nil, nil, ecode.New(ecode.AccountDisabled)
	}

	pair, err := p.tokens.Issue(ctx, c.ID, c.Roles)
	if err != nil {
		return nil, nil, err
	}
	return c, pair, nil
}

// findOrCreate loads the credential for the profile email, creating it on
// first sign-in. A concurrent sign-in that wins the insert is reloaded.
func (p *Provisioner) findOrCreate(ctx context.Context, prov structs.Provider, profile *oauth.Profile) (*structs.Credential, error) {
	c, err := p.repo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrNotFound) {
		c = newCredential(prov, profile)
		err = p.repo.Create(ctx, c)
		if err == nil {
			p.logger.Info(ctx, "credential provisioned", "user_id", c.ID, "provider", prov)
			return c, nil
		}
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		c, err = p.repo.FindByEmail(ctx, profile.Email)
	}
	if err != nil {
		return nil, err
	}

	if patchFromProfile(c, prov, profile) {
		if err := p.repo.Save(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newCredential(prov structs.Provider, profile *oauth.Profile) *structs.Credential {
	first, last := splitName(profile.Name)
	return &structs.Credential{
		ID:         nanoid.PrimaryKey(),
		Email:      profile.Email,
		Roles:      []string{authz.RoleUser},
		Active:     true,
		Provider:   prov,
		ProviderID: profile.ID,
		FirstName:  first,
		LastName:   last,
		ImageURL:   profile.Picture,
	}
}

// patchFromProfile fills empty provider fields and reports whether anything changed
func patchFromProfile(c *structs.Credential, prov structs.Provider, profile *oauth.Profile) bool {
	changed := false
	if c.ImageURL == "" && profile.Picture != "" {
		c.ImageURL = profile.Picture
		changed = true
	}
	if c.Provider == "" {
		c.Provider = prov
		changed = true
	}
	if c.ProviderID == "" && profile.ID != "" {
		c.ProviderID = profile.ID
		changed = true
	}
	return changed
}

// splitName splits on the first space; a missing part is empty
func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}
