// Package cli implements the interactive admin console for the identity
// service: signup, login checks, email verification and password resets
// against the configured database.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/saeon/odp-identity/internal/lockout"
	"github.com/saeon/odp-identity/internal/logging"
	"github.com/saeon/odp-identity/internal/password"
	"github.com/saeon/odp-identity/internal/server/config"
	"github.com/saeon/odp-identity/internal/server/repositories/repomanager"
	"github.com/saeon/odp-identity/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config   *config.Config
	identity *services.IdentityService
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	identity := services.NewIdentityService(db, rm, hasher, lockout.NewNoopPolicy(), logger)

	return &App{
		config:   cfg,
		identity: identity,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the command loop and blocks until "exit" or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Println("ODP identity admin console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("identity> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: signup, login, autologin <user-id>, verify <token>, forgot, reset <token>, checkpw, exit")
		case "signup":
			a.Signup(ctx)
		case "login":
			a.Login(ctx)
		case "autologin":
			a.AutoLogin(ctx, args)
		case "verify":
			a.Verify(ctx, args)
		case "forgot":
			a.Forgot(ctx)
		case "reset":
			a.Reset(ctx, args)
		case "checkpw":
			a.CheckPassword(ctx)
		case "exit":
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
