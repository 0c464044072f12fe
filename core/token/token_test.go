package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-dev/authkit/core/token"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[token.ID]struct{}, 1000)
	for range 1000 {
		id := token.New()
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier generated")
		seen[id] = struct{}{}
	}
}

func TestNew_NotZero(t *testing.T) {
	assert.False(t, token.New().IsZero())
	assert.True(t, token.ID{}.IsZero())
}

func TestString_Roundtrip(t *testing.T) {
	id := token.New()

	s := id.String()
	assert.Len(t, s, 43, "32 bytes base64url without padding")

	parsed, err := token.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"too long", strings.Repeat("a", 44)},
		{"invalid alphabet", strings.Repeat("a", 42) + "!"},
		{"padding not allowed", strings.Repeat("a", 42) + "="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.Parse(tt.input)
			assert.ErrorIs(t, err, token.ErrInvalidToken)
		})
	}
}
