package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/netbadge-ctrl/okboard/internal/cli"
	"github.com/netbadge-ctrl/okboard/internal/config"
	"github.com/netbadge-ctrl/okboard/internal/db"
	"github.com/netbadge-ctrl/okboard/internal/repository"
	"github.com/netbadge-ctrl/okboard/internal/service"
	"github.com/netbadge-ctrl/okboard/internal/timeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("OKBOARD_CONFIG"))
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	okrRepo := repository.NewSQLiteOkrRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	viewRepo := repository.NewSQLiteViewStateRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	engine := timeline.NewEngine(logger)

	var observer service.OpObserver
	if cfg.SlogLevel() <= slog.LevelInfo {
		observer = service.NewLogOpObserver(os.Stderr)
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, userRepo, uow),
		Boards:   service.NewBoardService(projectRepo, userRepo, viewRepo, engine, time.Now, observer),
		Users:    service.NewUserService(userRepo),
		Okrs:     service.NewOkrService(okrRepo),
		Activity: service.NewActivityService(activityRepo, projectRepo),
		Importer: service.NewImportService(uow),

		Config:  cfg,
		ActorID: os.Getenv("OKBOARD_ACTOR"),
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}

func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(handler), closeLog, nil
}
