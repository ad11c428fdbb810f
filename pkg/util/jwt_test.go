package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-signing-secret"

func generateTestPair(t *testing.T, userID uint, email, role, secret string, accessExpiry, refreshExpiry time.Duration) *TokenPair {
	t.Helper()
	tokens, err := GenerateTokenPair(userID, email, role, secret, accessExpiry, refreshExpiry)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	return tokens
}

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		email  string
		role   string
	}{
		{
			name:   "Customer tokens",
			userID: 1,
			email:  "customer@example.com",
			role:   "customer",
		},
		{
			name:   "Staff tokens",
			userID: 7,
			email:  "staff@example.com",
			role:   "staff",
		},
		{
			name:   "Admin tokens",
			userID: 9,
			email:  "admin@example.com",
			role:   "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := generateTestPair(t, tt.userID, tt.email, tt.role, testSecret, 15*time.Minute, 7*24*time.Hour)

			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		})
	}
}

func TestValidateToken(t *testing.T) {
	tokens := generateTestPair(t, 123, "staff@example.com", "staff", testSecret, 15*time.Minute, 7*24*time.Hour)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{
			name:   "Valid access token",
			token:  tokens.AccessToken,
			secret: testSecret,
		},
		{
			name:   "Valid refresh token",
			token:  tokens.RefreshToken,
			secret: testSecret,
		},
		{
			name:    "Wrong secret",
			token:   tokens.AccessToken,
			secret:  "some-other-secret",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Malformed token",
			token:   "not.a.jwt",
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Empty token",
			token:   "",
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, uint(123), claims.UserID)
				assert.Equal(t, "staff@example.com", claims.Email)
				assert.Equal(t, "staff", claims.Role)
			}
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	tokens := generateTestPair(t, 1, "staff@example.com", "staff", testSecret, time.Nanosecond, time.Nanosecond)

	time.Sleep(10 * time.Millisecond)

	claims, err := ValidateToken(tokens.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestTokenClaimsTimestamps(t *testing.T) {
	tokens := generateTestPair(t, 42, "admin@example.com", "admin", testSecret, 15*time.Minute, 7*24*time.Hour)

	claims, err := ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	require.NotNil(t, claims)

	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
	assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
}
