// Command portal-admin manages portal accounts and seed data from the shell.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ashureev/college-portal/internal/config"
	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/validation"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	errAndDie(err)

	repo, err := store.NewSQLite(cfg.DBPath)
	errAndDie(err)

	files, err := filestore.NewLocal(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		_ = repo.Close()
		errAndDie(err)
	}

	cli := commandLine{
		repo:      repo,
		files:     files,
		validator: validation.New(),
	}
	err = cli.run(os.Args)
	if closeErr := repo.Close(); closeErr != nil {
		slog.Warn("Failed to close repository", "error", closeErr)
	}
	if err != nil {
		if !errors.Is(err, errHelp) {
			slog.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}
}
