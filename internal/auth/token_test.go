package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSignAndVerify(t *testing.T) {
	token, err := Sign(testSecret, "finis-oculus", "user-1", time.Hour)
	require.NoError(t, err)

	userID, err := NewVerifier(testSecret, "finis-oculus").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, err = NewVerifier(testSecret, "").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyRejects(t *testing.T) {
	valid, err := Sign(testSecret, "finis-oculus", "user-1", time.Hour)
	require.NoError(t, err)
	expired, err := Sign(testSecret, "finis-oculus", "user-1", -time.Minute)
	require.NoError(t, err)
	noSubject, err := Sign(testSecret, "finis-oculus", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier Verifier
		token    string
	}{
		{"wrong secret", NewVerifier("other-secret", ""), valid},
		{"wrong issuer", NewVerifier(testSecret, "someone-else"), valid},
		{"expired", NewVerifier(testSecret, ""), expired},
		{"missing subject", NewVerifier(testSecret, ""), noSubject},
		{"garbage", NewVerifier(testSecret, ""), "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSubjectUnverified(t *testing.T) {
	token, err := Sign("secret-the-client-does-not-know", "", "user-42", time.Hour)
	require.NoError(t, err)

	userID, err := SubjectUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	_, err = SubjectUnverified("abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = BearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = BearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
