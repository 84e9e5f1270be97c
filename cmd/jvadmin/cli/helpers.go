package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"jvhelp-service/internal/client"
	"jvhelp-service/internal/config"
	"jvhelp-service/internal/db"
	"jvhelp-service/internal/pkg/credential"
	"jvhelp-service/internal/repository/postgres"
	"jvhelp-service/internal/service/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultServer = "http://localhost:3000"

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func resolveServer() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv("JVADMIN_SERVER"); env != "" {
		return env
	}
	return defaultServer
}

func resolveTokenFile() string {
	if tokenFile != "" {
		return tokenFile
	}
	return os.Getenv("JVADMIN_TOKEN_FILE")
}

// newAPIClient builds an admin API client over the file token cache.
func newAPIClient() (*client.Client, error) {
	store, err := client.NewFileTokenStore(resolveTokenFile())
	if err != nil {
		return nil, err
	}
	return client.New(resolveServer(), store, client.WithLogger(newLogger())), nil
}

// openDB connects with DATABASE_URL. The caller closes the pool.
func openDB(ctx context.Context) (*pgxpool.Pool, config.AppConfig, error) {
	cfg := config.Load()
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: cfg.DatabaseURL, MaxConns: 2})
	if err != nil {
		return nil, cfg, err
	}
	return pool, cfg, nil
}

// openAuthService wires the Session Authority straight onto Postgres.
func openAuthService(ctx context.Context) (*auth.AuthService, func(), error) {
	pool, cfg, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := auth.NewAuthService(
		postgres.NewPrincipalRepository(pool),
		postgres.NewSessionRepository(pool),
		credential.NewBcrypt(cfg.BcryptCost),
		newLogger(),
		auth.WithSessionTTL(cfg.SessionTTL),
	)
	return svc, pool.Close, nil
}

// readPassword prompts on the terminal without echo.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// promptNewPassword asks twice and requires both to match.
func promptNewPassword() (string, error) {
	password, err := readPassword("Password: ")
	if err != nil {
		return "", err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
