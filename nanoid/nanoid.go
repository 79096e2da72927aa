package nanoid

import (
	"strings"

	"github.com/ncobase/commerce/consts"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 21
)

// Must generate optional length nanoid with the default url-safe alphabet
func Must(l ...int) string {
	size := defaultSize
	if len(l) > 0 {
		size = l[0]
	}
	return gonanoid.Must(size)
}

// PrimaryKey generate a credential primary key
func PrimaryKey() string {
	return gonanoid.MustGenerate(consts.PrimaryKey, consts.PrimaryKeySize)
}

// IsPrimaryKey verify is primary key
func IsPrimaryKey(id string) bool {
	if len(id) != consts.PrimaryKeySize {
		return false
	}
	for _, r := range id {
		if !strings.ContainsRune(consts.PrimaryKey, r) {
			return false
		}
	}
	return true
}
