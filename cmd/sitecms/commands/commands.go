package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/config"
	"github.com/rachef/sitecms/internal/infrastructure/database"
	"github.com/rachef/sitecms/internal/infrastructure/server"
)

// Build information, set with -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewRootCommand creates the sitecms command tree
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sitecms",
		Short:         "Content API for the training centre website",
		Long:          `sitecms edits the two JSON documents behind the public website, keeps the formations navbar in sync and persists every change through the site backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(NewServeCommand(&configFile))
	rootCmd.AddCommand(NewMigrateCommand(&configFile))
	rootCmd.AddCommand(NewExportCommand(&configFile))
	rootCmd.AddCommand(NewImportCommand(&configFile))
	rootCmd.AddCommand(NewNavbarCommand(&configFile))
	rootCmd.AddCommand(NewTokenCommand(&configFile))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long:  "Load the documents, start auto-saving and serve the dashboard API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a)
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	if a.cfg.Store.LoadOnStart {
		if err := a.persistence.LoadData(ctx); err != nil {
			a.logger.Warnw("Initial load failed, the dashboard can retry with /store/load", "error", err)
		}
	}

	srv, err := server.New(a.cfg, server.Deps{
		Store:       a.store,
		Persistence: a.persistence,
		Feed:        a.feed,
		Registry:    a.registry,
		DB:          a.db,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if a.cfg.AutoSave.Enabled {
		a.autosaver.Start(ctx)
		defer a.autosaver.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infow("Starting sitecms API server",
			"address", a.cfg.Server.Address(),
			"environment", a.cfg.App.Environment,
			"backend", a.cfg.Backend.BaseURL,
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.autosaver.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorw("Server shutdown failed", "error", err)
	}

	if a.store.Dirty() {
		if _, err := a.persistence.TrySave(shutdownCtx); err != nil {
			a.logger.Errorw("Final save failed, unsaved changes are lost", "error", err)
		}
	}
	return nil
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Revision archive migration commands",
		Long:  "Manage the revision archive schema (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, *configFile, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, *configFile, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configFile, func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("No migrations applied")
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				cmd.Printf("Current migration version: %d\n", version)
				cmd.Printf("Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

func withMigrator(configFile string, fn func(m *migrate.Migrate) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Database.Enabled {
		return errors.New("the revision archive is disabled, set DB_ENABLED=true")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m, err := db.Migrator()
	if err != nil {
		return err
	}
	return fn(m)
}

func runMigration(cmd *cobra.Command, configFile, direction string) error {
	return withMigrator(configFile, func(m *migrate.Migrate) error {
		var err error
		switch direction {
		case "up":
			err = m.Up()
		case "down":
			err = m.Down()
		}

		if errors.Is(err, migrate.ErrNoChange) {
			cmd.Println("No migrations to run")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		cmd.Printf("Migration %s completed successfully\n", direction)
		return nil
	})
}

// NewExportCommand creates the export command
func NewExportCommand(configFile *string) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download both documents as data.json and datap.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.persistence.LoadData(cmd.Context()); err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}

			for _, file := range entities.Files {
				body, name, err := a.persistence.Export(file)
				if err != nil {
					return err
				}
				target := filepath.Join(outDir, name)
				if err := os.WriteFile(target, body, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", target, err)
				}
				cmd.Printf("Exported %s\n", target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the documents to")
	return cmd
}

// NewImportCommand creates the import command
func NewImportCommand(configFile *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace both documents with a {data, datap} backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}
			defer f.Close()

			bundle, err := document.Decode(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			a, err := loadApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.persistence.Import(cmd.Context(), bundle); err != nil {
				return err
			}
			cmd.Printf("Imported %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "backup file holding data and datap (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// NewNavbarCommand creates the navbar maintenance command
func NewNavbarCommand(configFile *string) *cobra.Command {
	navbarCmd := &cobra.Command{
		Use:   "navbar",
		Short: "Navbar maintenance commands",
	}

	var titles bool
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the formations submenu and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if err := a.persistence.LoadData(ctx); err != nil {
				return err
			}

			changed := a.store.SyncNavbar()
			if titles {
				changed = a.store.SyncNavbarTitles() || changed
			}
			if !changed {
				cmd.Println("Navbar already in sync")
				return nil
			}

			if err := a.persistence.SaveData(ctx); err != nil {
				return err
			}
			cmd.Println("Navbar synchronised")
			return nil
		},
	}
	syncCmd.Flags().BoolVar(&titles, "titles", false, "also copy page titles onto the submenu")
	navbarCmd.AddCommand(syncCmd)

	return navbarCmd
}

// NewTokenCommand creates the command that issues dashboard bearer tokens
func NewTokenCommand(configFile *string) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			signed, expiresAt, err := services.NewTokenService(cfg.Auth).Issue(subject, ttl)
			if err != nil {
				return err
			}
			cmd.Println(signed)
			cmd.PrintErrf("Expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "editor", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print sitecms version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("sitecms %s\n", Version)
			cmd.Printf("Build Date: %s\n", BuildDate)
			cmd.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}
