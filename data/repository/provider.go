package repository

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/commerce/data"
)

// ProviderSet is the wire provider set for the repository package.
var ProviderSet = wire.NewSet(ProvideCredentialRepository)

// ProvideCredentialRepository creates the credential repository.
func ProvideCredentialRepository(d *data.Data) (CredentialRepository, error) {
	return NewCredentialRepository(context.Background(), d)
}
