package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerbooster/cv-api/internal/config"
	"github.com/careerbooster/cv-api/internal/service/auth"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func runCmd(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(func(key string) string { return env[key] })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func tokensFrom(output string) []string {
	var tokens []string
	for _, line := range strings.Split(output, "\n") {
		if token, ok := strings.CutPrefix(line, "Token: "); ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func TestTokenGenerator_IssuesValidTokens(t *testing.T) {
	out, err := runCmd(t, nil, "--secret", testSecret, "alice@example.com", "bob@example.com")
	require.NoError(t, err)

	tokens := tokensFrom(out)
	require.Len(t, tokens, 2)

	jwtService, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(context.Background(), tokens[0])
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	claims, err = jwtService.ValidateToken(context.Background(), tokens[1])
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", claims.Email)
}

func TestTokenGenerator_SecretFromEnvironment(t *testing.T) {
	out, err := runCmd(t, map[string]string{secretEnvVar: testSecret}, "user@example.com")
	require.NoError(t, err)
	assert.Len(t, tokensFrom(out), 1)
}

func TestTokenGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no emails", args: []string{"--secret", testSecret}},
		{name: "missing secret", args: []string{"user@example.com"}},
		{name: "short secret", args: []string{"--secret", "short", "user@example.com"}},
		{name: "invalid email", args: []string{"--secret", testSecret, "not-an-email"}},
		{name: "non-positive lifetime", args: []string{"--secret", testSecret, "--lifetime", "0", "user@example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCmd(t, nil, tc.args...)
			assert.Error(t, err)
			assert.Empty(t, tokensFrom(out))
		})
	}
}
