package nanoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryKey(t *testing.T) {
	id := PrimaryKey()
	assert.Len(t, id, 16)
	assert.True(t, IsPrimaryKey(id))
	assert.NotEqual(t, id, PrimaryKey())
}

func TestIsPrimaryKey(t *testing.T) {
	assert.False(t, IsPrimaryKey(""))
	assert.False(t, IsPrimaryKey("short"))
	assert.False(t, IsPrimaryKey("abcdefgh-jklmnop"))
	assert.True(t, IsPrimaryKey("abcdefghijklmnop"))
}

func TestMust(t *testing.T) {
	assert.Len(t, Must(), 21)
	assert.Len(t, Must(8), 8)
}
