package session_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-dev/authkit/core/session"
)

func TestEncodePayload_Roundtrip(t *testing.T) {
	in := testData{UserID: "user-1", Theme: "dark"}

	b, err := session.EncodePayload(in, 64*1024)
	require.NoError(t, err)

	out, err := session.DecodePayload[testData](b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodePayload_TooLarge(t *testing.T) {
	in := testData{UserID: strings.Repeat("x", 200)}

	_, err := session.EncodePayload(in, 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrPayloadTooLarge)
}

func TestEncodePayload_ZeroBoundDisabled(t *testing.T) {
	in := testData{UserID: strings.Repeat("x", 200)}

	b, err := session.EncodePayload(in, 0)

	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestEncodePayload_Unserializable(t *testing.T) {
	_, err := session.EncodePayload(make(chan int), 0)

	require.Error(t, err)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := session.DecodePayload[testData]([]byte("{not json"))

	require.Error(t, err)
}
