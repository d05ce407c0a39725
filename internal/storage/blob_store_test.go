package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key := NewKey("media", "mp3")

	require.True(t, strings.HasPrefix(key, "media/"))
	require.True(t, strings.HasSuffix(key, ".mp3"))

	id := strings.TrimSuffix(strings.TrimPrefix(key, "media/"), ".mp3")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNewKey_Unique(t *testing.T) {
	// Identical inputs still mint distinct keys, so re-uploading the same
	// bytes never collides with an existing blob.
	assert.NotEqual(t, NewKey("media", "wav"), NewKey("media", "wav"))
}
