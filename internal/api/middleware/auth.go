package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/careerbooster/cv-api/internal/api/shared"
	"github.com/careerbooster/cv-api/internal/platform/logger"
	"github.com/careerbooster/cv-api/internal/redact"
	"github.com/careerbooster/cv-api/internal/service/auth"
)

const unauthorizedTitle = "Unauthorized"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates bearer tokens from the Authorization header and
// adds the caller's email to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			unauthorized(w, r, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				unauthorized(w, r, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrMissingIdentity):
				unauthorized(w, r, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError,
					shared.NewErrorEnvelope("Internal Server Error", "Authentication error"))
			}
			return
		}

		ctx := shared.WithIdentity(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	shared.RespondWithError(w, r, http.StatusUnauthorized, shared.NewErrorEnvelope(unauthorizedTitle, message))
}
