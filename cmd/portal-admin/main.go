// Command portal-admin is the operator CLI: migrations, admin account
// management, and development seeding.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dayanisma-dernegi/portal/config"
	"github.com/dayanisma-dernegi/portal/internal/bootstrap"
	"github.com/dayanisma-dernegi/portal/internal/data"
	"github.com/dayanisma-dernegi/portal/internal/devseed"
	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"create-admin": {
			name:        "create-admin",
			description: "Create an admin account (-email, -name, -role, -password)",
			run:         runCreateAdmin,
		},
		"set-password": {
			name:        "set-password",
			description: "Reset an admin account password (-email, -password)",
			run:         runSetPassword,
		},
		"deactivate": {
			name:        "deactivate",
			description: "Deactivate an admin account (-email); sessions end on next whoami",
			run:         runDeactivate,
		},
		"seed": {
			name:        "seed",
			description: "Run migrations and seed development data",
			run:         runSeed,
		},
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, "Usage: portal-admin <command> [flags]\n\nAvailable commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %-16s %s\n", name, cmds[name].description)
	}
}

// withDB opens the database, runs fn, and closes the connection.
func withDB(cctx *commandContext, fn func(db *sql.DB) error) error {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cctx.Config.Postgres,
		RedisConfig: cctx.Config.Redis,
		Logger:      cctx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cctx.Logger.ErrorContext(cctx.Ctx, "close database failed", "error", cerr)
		}
	}()
	return fn(db)
}

func runMigrate(cctx *commandContext, _ []string) error {
	return withDB(cctx, func(db *sql.DB) error {
		ctx, cancel := context.WithTimeout(cctx.Ctx, defaultMigrationTimeout)
		defer cancel()
		return bootstrap.RunMigrations(ctx, db, cctx.Logger)
	})
}

func runCreateAdmin(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	email := fs.String("email", "", "login email (required)")
	name := fs.String("name", "", "display name (required)")
	role := fs.String("role", string(domainauth.RoleAdmin), "role: ADMIN or SUPER_ADMIN")
	password := fs.String("password", "", "initial password (required, min 10 chars)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *name == "" || *password == "" {
		return errors.New("create-admin requires -email, -name, and -password")
	}

	return withDB(cctx, func(db *sql.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user, err := data.NewAdminUserRepo(db).Create(cctx.Ctx, data.CreateAdminUserParams{
			Req: &model.CreateAdminUserRequest{
				Email:    *email,
				Name:     *name,
				Role:     domainauth.Role(*role),
				Password: *password,
			},
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}
		cctx.Logger.InfoContext(cctx.Ctx, "admin account created", "id", user.ID, "email", user.Email, "role", user.Role)
		return nil
	})
}

func runSetPassword(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("set-password", flag.ContinueOnError)
	email := fs.String("email", "", "login email (required)")
	password := fs.String("password", "", "new password (required, min 10 chars)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("set-password requires -email and -password")
	}
	if len(*password) < 10 {
		return errors.New("password must be at least 10 characters")
	}

	return withDB(cctx, func(db *sql.DB) error {
		repo := data.NewAdminUserRepo(db)
		user, err := repo.GetByEmail(cctx.Ctx, *email)
		if err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := repo.SetPassword(cctx.Ctx, user.ID, string(hash)); err != nil {
			return err
		}
		cctx.Logger.InfoContext(cctx.Ctx, "password updated", "email", user.Email)
		return nil
	})
}

func runDeactivate(cctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("deactivate", flag.ContinueOnError)
	email := fs.String("email", "", "login email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("deactivate requires -email")
	}

	return withDB(cctx, func(db *sql.DB) error {
		repo := data.NewAdminUserRepo(db)
		user, err := repo.GetByEmail(cctx.Ctx, *email)
		if err != nil {
			return err
		}
		inactive := false
		if _, err := repo.Update(cctx.Ctx, user.ID, model.UpdateAdminUserRequest{IsActive: &inactive}); err != nil {
			return err
		}
		cctx.Logger.InfoContext(cctx.Ctx, "admin account deactivated", "email", user.Email)
		return nil
	})
}

func runSeed(cctx *commandContext, _ []string) error {
	if cctx.Config.IsProduction() {
		return errors.New("seed refuses to run in production")
	}
	return withDB(cctx, func(db *sql.DB) error {
		ctx, cancel := context.WithTimeout(cctx.Ctx, defaultMigrationTimeout)
		defer cancel()
		if err := bootstrap.RunMigrations(ctx, db, cctx.Logger); err != nil {
			return err
		}
		return devseed.Run(ctx, db, cctx.Logger)
	})
}
