// Command token-generator issues bearer tokens for local testing of the
// CV upload endpoint. It signs with the same secret the server reads from
// CAREERBOOSTER_AUTH_JWT_SECRET.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/careerbooster/cv-api/internal/config"
	"github.com/careerbooster/cv-api/internal/service/auth"
)

const secretEnvVar = config.EnvPrefix + "_AUTH_JWT_SECRET"

func main() {
	if err := newRootCmd(os.Getenv).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command. getenv supplies the secret fallback.
func newRootCmd(getenv func(string) string) *cobra.Command {
	var (
		secret   string
		lifetime int
	)

	cmd := &cobra.Command{
		Use:   "token-generator EMAIL [EMAIL...]",
		Short: "Issue bearer tokens for the CV upload API",
		Long: "Issue signed access tokens for the given emails. The secret defaults to " +
			secretEnvVar + " so tokens match a locally running server.",
		Example: `  token-generator user@example.com
  token-generator --lifetime 15 alice@example.com bob@example.com`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = getenv(secretEnvVar)
			}
			return generateTokens(cmd.Context(), cmd.OutOrStdout(), config.AuthConfig{
				JWTSecret:            secret,
				TokenLifetimeMinutes: lifetime,
			}, args)
		},
	}

	cmd.Flags().StringVarP(&secret, "secret", "s", "", "HMAC signing secret (default $"+secretEnvVar+")")
	cmd.Flags().IntVarP(&lifetime, "lifetime", "l", 60, "Token lifetime in minutes")

	return cmd
}

func generateTokens(ctx context.Context, out io.Writer, cfg config.AuthConfig, emails []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid auth settings: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	for _, email := range emails {
		if err := validate.Var(email, "required,email"); err != nil {
			return fmt.Errorf("invalid email %q: %w", email, err)
		}

		token, err := jwtService.GenerateToken(ctx, email)
		if err != nil {
			return fmt.Errorf("generating token for %s: %w", email, err)
		}
		fmt.Fprintf(out, "Email: %s\nToken: %s\n\n", email, token)
	}

	return nil
}
