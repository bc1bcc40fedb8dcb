package auth

import (
	"context"
	"testing"
	"time"

	"github.com/careerbooster/cv-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
	testEmail   = "user@example.com"
)

// signCustom signs arbitrary claims with secret, for tokens the service
// itself would never issue.
func signCustom(t *testing.T, secret string, claims jwtCustomClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	svc := newHMACJWTService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("generates valid token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(context.Background(), testEmail)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, testEmail, claims.Email)
		assert.Equal(t, testEmail, claims.Subject)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		t.Parallel()

		_, err := svc.GenerateToken(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	at := func(ts time.Time) func() time.Time {
		return func() time.Time { return ts }
	}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime))
				token, err := svc.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)
				return svc, token
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime))
				token, err := genSvc.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)

				valSvc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime.Add(tokenLifetime+time.Hour)))
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "within clock skew",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime))
				token, err := genSvc.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)

				valSvc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime.Add(tokenLifetime+time.Minute)))
				return valSvc, token
			},
		},
		{
			name: "invalid signature",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newHMACJWTService(testSecret, tokenLifetime, at(fixedTime))
				token, err := genSvc.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)

				return newHMACJWTService(wrongSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				return newHMACJWTService(testSecret, tokenLifetime, at(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "not yet valid",
			setupFunc: func(t *testing.T) (JWTService, string) {
				token := signCustom(t, testSecret, jwtCustomClaims{
					Email:     testEmail,
					TokenType: "access",
					RegisteredClaims: jwt.RegisteredClaims{
						NotBefore: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(2 * time.Hour)),
					},
				})
				return newHMACJWTService(testSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong token type",
			setupFunc: func(t *testing.T) (JWTService, string) {
				token := signCustom(t, testSecret, jwtCustomClaims{
					Email:     testEmail,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				})
				return newHMACJWTService(testSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "missing identity",
			setupFunc: func(t *testing.T) (JWTService, string) {
				token := signCustom(t, testSecret, jwtCustomClaims{
					TokenType: "access",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				})
				return newHMACJWTService(testSecret, tokenLifetime, at(fixedTime)), token
			},
			wantErr: ErrMissingIdentity,
		},
		{
			name: "subject used when email claim absent",
			setupFunc: func(t *testing.T) (JWTService, string) {
				token := signCustom(t, testSecret, jwtCustomClaims{
					TokenType: "access",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   testEmail,
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				})
				return newHMACJWTService(testSecret, tokenLifetime, at(fixedTime)), token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tt.setupFunc(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testEmail, claims.Email)
		})
	}
}
