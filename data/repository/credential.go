// Package repository persists credential records in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/commerce/data"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/nanoid"
	"github.com/ncobase/commerce/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const credentialCollection = "credentials"

var (
	// ErrNotFound is wrapped by lookups that match no record
	ErrNotFound = errors.New("credential not found")
	// ErrDuplicateEmail is wrapped when an email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
)

// CredentialRepository stores credential records
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*structs.Credential, error)
	FindByID(ctx context.Context, id string) (*structs.Credential, error)
	Create(ctx context.Context, c *structs.Credential) error
	Save(ctx context.Context, c *structs.Credential) error
}

type credentialRepository struct {
	col *mongo.Collection
	now func() time.Time
}

// NewCredentialRepository creates the Mongo-backed repository and ensures its indexes
func NewCredentialRepository(ctx context.Context, d *data.Data) (CredentialRepository, error) {
	db := d.Database()
	if db == nil {
		return nil, errors.New("credential repository requires a mongo connection")
	}
	r := &credentialRepository{col: db.Collection(credentialCollection), now: time.Now}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *credentialRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("idx_provider"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create credential indexes: %w", err)
	}
	return nil
}

func (r *credentialRepository) findOne(ctx context.Context, filter bson.M) (*structs.Credential, error) {
	var c structs.Credential
	err := r.col.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ecode.Wrap(ecode.NotFound, ErrNotFound, ecode.NotExist("credential"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	return &c, nil
}

// FindByEmail finds a record by normalized email
func (r *credentialRepository) FindByEmail(ctx context.Context, email string) (*structs.Credential, error) {
	return r.findOne(ctx, bson.M{"email": structs.NormalizeEmail(email)})
}

// FindByID finds a record by id
func (r *credentialRepository) FindByID(ctx context.Context, id string) (*structs.Credential, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// Create inserts a new record, assigning an id and timestamps
func (r *credentialRepository) Create(ctx context.Context, c *structs.Credential) error {
	c.Normalize()
	if c.ID == "" {
		c.ID = nanoid.PrimaryKey()
	}
	now := r.now().UnixMilli()
	c.CreatedAt, c.UpdatedAt = now, now

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Save replaces an existing record
func (r *credentialRepository) Save(ctx context.Context, c *structs.Credential) error {
	c.Normalize()
	c.UpdatedAt = r.now().UnixMilli()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ecode.Wrap(ecode.NotFound, ErrNotFound, ecode.NotExist("credential"))
	}
	return nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ecode.Wrap(ecode.Conflict, fmt.Errorf("%w: %w", ErrDuplicateEmail, err), ecode.AlreadyExist("email"))
	}
	return fmt.Errorf("failed to write credential: %w", err)
}
