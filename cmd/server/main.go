package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	alumni "github.com/goliatone/go-alumni"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := newLogger()

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slogAdapter) error {
	cfg, err := alumni.LoadConfig()
	if err != nil {
		return err
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate(ctx, sqldb); err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	repo := alumni.NewRepositoryManager(db)
	srv := alumni.NewServer(cfg, repo, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(alumni.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func newLogger() *slogAdapter {
	return &slogAdapter{
		l: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
	}
}

// slogAdapter satisfies the alumni.Logger interface with structured
// key-value logging.
type slogAdapter struct {
	l *slog.Logger
}

func (s *slogAdapter) Debug(msg string, args ...any) {
	s.l.Debug(msg, args...)
}

func (s *slogAdapter) Info(msg string, args ...any) {
	s.l.Info(msg, args...)
}

func (s *slogAdapter) Error(msg string, args ...any) {
	s.l.Error(msg, args...)
}
