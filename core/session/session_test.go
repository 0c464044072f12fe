package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/authkit-dev/authkit/core/session"
	"github.com/authkit-dev/authkit/core/token"
)

type testData struct {
	UserID string
	Theme  string
}

func newTestSession(ttl time.Duration) session.Session[testData] {
	now := time.Now()
	return session.Session[testData]{
		ID:             token.New(),
		Data:           testData{UserID: "user-1", Theme: "dark"},
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(ttl),
		Status:         session.StatusActive,
	}
}

func TestSession_Fresh(t *testing.T) {
	sess := newTestSession(time.Hour)

	assert.False(t, sess.IsModified())
	assert.False(t, sess.IsDeleted())
	assert.False(t, sess.IsRotated())
	assert.False(t, sess.IsExpired())
	assert.True(t, sess.IsActive())
}

func TestSession_SetData(t *testing.T) {
	sess := newTestSession(time.Hour)

	sess.SetData(testData{UserID: "user-2", Theme: "light"})

	assert.Equal(t, "user-2", sess.Data.UserID)
	assert.Equal(t, "light", sess.Data.Theme)
	assert.True(t, sess.IsModified())
	assert.False(t, sess.IsDeleted())
}

func TestSession_Revoke(t *testing.T) {
	sess := newTestSession(time.Hour)

	sess.Revoke()

	assert.Equal(t, session.StatusRevoked, sess.Status)
	assert.True(t, sess.IsModified())
	assert.False(t, sess.IsActive())
	assert.False(t, sess.IsExpired(), "revocation does not change expiry")
}

func TestSession_Delete(t *testing.T) {
	sess := newTestSession(time.Hour)

	sess.Delete()

	assert.True(t, sess.IsDeleted())
	assert.False(t, sess.IsModified(), "deletion needs no save")
}

func TestSession_Rotate(t *testing.T) {
	sess := newTestSession(time.Hour)

	sess.Rotate()

	assert.True(t, sess.IsRotated())
	assert.True(t, sess.IsModified())
}

func TestSession_IsExpired(t *testing.T) {
	sess := newTestSession(-time.Minute)

	assert.True(t, sess.IsExpired())
	assert.False(t, sess.IsActive())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "active", session.StatusActive.String())
	assert.Equal(t, "expired", session.StatusExpired.String())
	assert.Equal(t, "revoked", session.StatusRevoked.String())
	assert.Equal(t, "unknown", session.Status(99).String())
}
