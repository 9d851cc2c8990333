package database

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/adamanr/departments_service/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewConnect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Database.User, cfg.Database.Password),
		Host:   cfg.Database.Host,
		Path:   "/" + cfg.Database.Database,
	}

	poolCfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		logger.Error("Error parsing DB config", slog.String("error", err.Error()))
		return nil, err
	}

	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Error connecting to DB", slog.String("error", err.Error()))
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		logger.Error("Error pinging DB", slog.String("error", err.Error()))
		pool.Close()
		return nil, err
	}

	logger.Info("Connected to DB successfully", slog.String("database", cfg.Database.Database))
	return pool, nil
}
