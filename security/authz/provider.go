package authz

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the authz package.
var ProviderSet = wire.NewSet(NewPolicy)
