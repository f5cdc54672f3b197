package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarriesTag(t *testing.T) {
	id := New(TagThread)
	assert.True(t, HasTag(id, TagThread))
	assert.False(t, HasTag(id, TagComment))
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New(TagUser)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestHasTagRejectsBareTag(t *testing.T) {
	assert.False(t, HasTag("usr", TagUser))
	assert.False(t, HasTag("", TagUser))
	assert.True(t, HasTag("usr_abc", TagUser))
}
