package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Black-And-White-Club/competitions/app/migrations"
	"github.com/Black-And-White-Club/competitions/app/modules/auth"
	authservice "github.com/Black-And-White-Club/competitions/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	"github.com/Black-And-White-Club/competitions/app/modules/user"
	userservice "github.com/Black-And-White-Club/competitions/app/modules/user/application"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
	"github.com/Black-And-White-Club/competitions/config"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load configuration for database connection ONLY
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := persistence.Open(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	migrators := migrations.NewMigrators(db)

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "competitions database and token administration",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
			newTokenCommand(cfg, db),
			newUserCommand(cfg, db),
		},
	}

	// cli.App.Run expects the program name first.
	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

// newMultiModuleDBCommand runs migrations across modules in foreign key
// order; rollbacks walk it backwards.
func newMultiModuleDBCommand(migrators []migrations.Module) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", m.Name)
						if err := m.Migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init migrations for module %s: %w", m.Name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Running migrations for module: %s\n", m.Name)
						if err := m.Migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.Migrator.Migrate(c.Context)
						unlockErr := m.Migrator.Unlock(c.Context)
						if err != nil {
							return err
						}
						if unlockErr != nil {
							return unlockErr
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.Name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						fmt.Printf("Rolling back migrations for module: %s\n", m.Name)
						group, err := m.Migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.Name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, err := migrations.Find(migrators, moduleName)
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, err := migrations.Find(migrators, moduleName)
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					files, err := migrator.CreateSQLMigrations(c.Context, name)
					if err != nil {
						return err
					}

					for _, mf := range files {
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					}

					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						ms, err := m.Migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.Name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

// newCLIObservability builds a quiet observability bundle for one-shot commands.
func newCLIObservability(ctx context.Context, cfg *config.Config) (*observability.Observability, error) {
	obsCfg := config.ToObsConfig(cfg)
	obsCfg.MetricsEnabled = false
	obsCfg.OTLPEndpoint = ""
	obsCfg.LogLevel = "warn"
	return observability.New(ctx, obsCfg)
}

func newTokenCommand(cfg *config.Config, db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "signed access tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "issue a token for a user, registering the user when --name is given",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user-id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "role", Value: string(authdomain.CapabilityParticipant), Usage: "participant or administrator"},
					&cli.DurationFlag{Name: "ttl", Value: cfg.JWT.DefaultTTL},
				},
				Action: func(c *cli.Context) error {
					obs, err := newCLIObservability(c.Context, cfg)
					if err != nil {
						return err
					}

					userModule := user.NewUserModule(c.Context, obs, db)
					if name := c.String("name"); name != "" {
						if _, err := userModule.UserService.RegisterUser(c.Context, validation.UserInput{ID: c.Int64("user-id"), Name: name}); err != nil {
							return fmt.Errorf("register user: %w", err)
						}
					}

					authModule := auth.NewModule(c.Context, cfg, obs, userModule.Repository)
					resp, err := authModule.Service.IssueToken(c.Context, authservice.IssueTokenRequest{
						UserID:     c.Int64("user-id"),
						Capability: authdomain.Capability(c.String("role")),
						TTL:        c.Duration("ttl"),
					})
					if err != nil {
						return fmt.Errorf("issue token: %w", err)
					}

					fmt.Printf("Token for %s (%d, %s), expires %s:\n%s\n",
						resp.Identity.Name, resp.Identity.UserID, resp.Identity.Capability,
						resp.ExpiresAt.Format(time.RFC3339), resp.Token)
					return nil
				},
			},
		},
	}
}

func newUserCommand(cfg *config.Config, db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "user records",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "create or rename a user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
				},
				Action: func(c *cli.Context) error {
					obs, err := newCLIObservability(c.Context, cfg)
					if err != nil {
						return err
					}
					userModule := user.NewUserModule(c.Context, obs, db)
					u, err := userModule.UserService.RegisterUser(c.Context, validation.UserInput{ID: c.Int64("id"), Name: c.String("name")})
					if err != nil {
						return err
					}
					fmt.Printf("Registered user %d: %s\n", u.ID, u.Name)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "print a user record",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
				},
				Action: func(c *cli.Context) error {
					obs, err := newCLIObservability(c.Context, cfg)
					if err != nil {
						return err
					}
					userModule := user.NewUserModule(c.Context, obs, db)
					return showUser(c.Context, userModule.UserService, c.Int64("id"), os.Stdout)
				},
			},
		},
	}
}

func showUser(ctx context.Context, users userservice.Service, id int64, w io.Writer) error {
	u, err := users.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("show user: %w", err)
	}
	_, err = fmt.Fprintf(w, "User %d: %s (created %s)\n", u.ID, u.Name, u.CreatedAt.Format(time.RFC3339))
	return err
}
