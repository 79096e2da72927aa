package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/data/repository"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/nanoid"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/structs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu      sync.Mutex
	byID    map[string]structs.Credential
	creates int
	saves   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[string]structs.Credential{}}
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (*structs.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = structs.NormalizeEmail(email)
	for _, c := range r.byID {
		if c.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, ecode.Wrap(ecode.NotFound, repository.ErrNotFound)
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*structs.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, ecode.Wrap(ecode.NotFound, repository.ErrNotFound)
	}
	return &c, nil
}

func (r *memoryRepo) Create(_ context.Context, c *structs.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Normalize()
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return ecode.Wrap(ecode.Conflict, repository.ErrDuplicateEmail)
		}
	}
	if c.ID == "" {
		c.ID = nanoid.PrimaryKey()
	}
	r.creates++
	r.byID[c.ID] = *c
	return nil
}

func (r *memoryRepo) Save(_ context.Context, c *structs.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return ecode.Wrap(ecode.NotFound, repository.ErrNotFound)
	}
	c.Normalize()
	r.saves++
	r.byID[c.ID] = *c
	return nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTokens(t *testing.T) (*token.Service, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(cache.WithClock(clk.now))
	svc, err := token.NewService(&token.Config{
		Secret:     "service-test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, store, token.WithClock(clk.now))
	require.NoError(t, err)
	return svc, clk
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, logrus.ErrorLevel)
}

func codeOf(err error) int {
	return ecode.From(err).Code
}
