package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	g, err := NewGate("")
	require.NoError(t, err)

	assert.NoError(t, g.Check(DefaultAdminPassword))

	err = g.Check("1234")
	require.ErrorIs(t, err, ErrIncorrectPassword)
	assert.Equal(t, "Incorrect password", err.Error())

	assert.ErrorIs(t, g.Check(""), ErrIncorrectPassword)

	// Unlimited retries.
	for i := 0; i < 3; i++ {
		assert.Error(t, g.Check("wrong"))
	}
	assert.NoError(t, g.Check("2141"))
}

func TestGateCustomPassword(t *testing.T) {
	g, err := NewGate("open sesame")
	require.NoError(t, err)
	assert.NoError(t, g.Check("open sesame"))
	assert.Error(t, g.Check(DefaultAdminPassword))
}

func TestSessionToken(t *testing.T) {
	m := &Manager{Secret: []byte("s3cret"), TTL: time.Hour, Issuer: "kh-portfolio"}

	tok, err := m.NewSessionToken("abc")
	require.NoError(t, err)

	id, err := m.ParseSessionToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	other := &Manager{Secret: []byte("different"), TTL: time.Hour, Issuer: "kh-portfolio"}
	_, err = other.ParseSessionToken(tok)
	assert.Error(t, err)

	expired := &Manager{Secret: []byte("s3cret"), TTL: -time.Minute, Issuer: "kh-portfolio"}
	tok, err = expired.NewSessionToken("abc")
	require.NoError(t, err)
	_, err = m.ParseSessionToken(tok)
	assert.Error(t, err)

	_, err = m.ParseSessionToken("not-a-token")
	assert.Error(t, err)
}
