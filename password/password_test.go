package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-dev/authkit/password"
)

// testParams keeps tests fast; production code uses DefaultParams.
func testParams() password.Params {
	return password.Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
}

func TestNew_InvalidParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*password.Params)
	}{
		{"memory too low", func(p *password.Params) { p.Memory = 1024 }},
		{"zero time", func(p *password.Params) { p.Time = 0 }},
		{"zero parallelism", func(p *password.Params) { p.Parallelism = 0 }},
		{"salt too short", func(p *password.Params) { p.SaltLength = 8 }},
		{"key too short", func(p *password.Params) { p.KeyLength = 8 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams()
			tc.mutate(&params)

			_, err := password.New(params)
			assert.Error(t, err)
		})
	}
}

func TestMustNew_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		password.MustNew(password.Params{})
	})
	assert.NotPanics(t, func() {
		password.MustNew(password.DefaultParams())
	})
}

func TestHashVerify(t *testing.T) {
	h := password.MustNew(testParams())

	record, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := h.Verify("correct horse battery staple", record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_UniqueSalts(t *testing.T) {
	h := password.MustNew(testParams())

	a, err := h.Hash("same password")
	require.NoError(t, err)
	b, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each record carries a fresh salt")
}

func TestVerify_EmptyPassword(t *testing.T) {
	h := password.MustNew(testParams())

	record, err := h.Hash("")
	require.NoError(t, err)

	ok, err := h.Verify("", record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("not empty", record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_MalformedRecord(t *testing.T) {
	h := password.MustNew(testParams())

	cases := []string{
		"",
		"not a record",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$",
		"$argon2id$v=19$m=8192,t=1,p=1,x=2$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
	}

	for _, record := range cases {
		_, err := h.Verify("password", record)
		assert.ErrorIs(t, err, password.ErrInvalidRecord, record)
	}
}

func TestVerify_CrossHasherParams(t *testing.T) {
	weak := password.MustNew(testParams())
	strong := password.MustNew(password.DefaultParams())

	record, err := weak.Hash("secret")
	require.NoError(t, err)

	// Parameters are read from the record, not the verifying hasher.
	ok, err := strong.Verify("secret", record)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNeedsRehash(t *testing.T) {
	weak := password.MustNew(testParams())
	strong := password.MustNew(password.DefaultParams())

	record, err := weak.Hash("secret")
	require.NoError(t, err)

	needs, err := strong.NeedsRehash(record)
	require.NoError(t, err)
	assert.True(t, needs)

	needs, err = weak.NeedsRehash(record)
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestNeedsRehash_MalformedRecord(t *testing.T) {
	h := password.MustNew(testParams())

	_, err := h.NeedsRehash("garbage")
	assert.ErrorIs(t, err, password.ErrInvalidRecord)
}
