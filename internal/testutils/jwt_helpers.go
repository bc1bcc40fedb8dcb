package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careerbooster/cv-api/internal/config"
	"github.com/careerbooster/cv-api/internal/service/auth"
)

// TestJWTConstants provides standard values for JWT testing
const (
	// TestJWTSecret is a dedicated test-only secret for signing JWTs
	// This must never be used in production
	TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

	// TestTokenLifetimeMinutes is the lifetime of test access tokens
	TestTokenLifetimeMinutes = 15
)

// TestAuthConfig returns auth settings signed with TestJWTSecret.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: TestTokenLifetimeMinutes,
	}
}

// NewTestJWTService creates the production JWT service keyed with TestJWTSecret.
func NewTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(TestAuthConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeader returns an "Authorization" header value carrying a
// token for email, signed by svc.
func GenerateAuthHeader(t *testing.T, svc auth.JWTService, email string) string {
	t.Helper()

	token, err := svc.GenerateToken(context.Background(), email)
	require.NoError(t, err, "Failed to generate token for %s", email)
	return "Bearer " + token
}
