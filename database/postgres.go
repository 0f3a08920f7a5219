package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"marketplace/api/config"
	"marketplace/api/logger"
)

type DBClient struct {
	DB  *sql.DB
	log *logger.Logger
}

func NewPostgresDB(ctx context.Context, cfg config.PostgresConfig, log *logger.Logger) (*DBClient, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database (ping failed): %w", err)
	}

	log.Info("Connected to PostgreSQL", "max_open_conns", cfg.MaxOpenConns)
	return &DBClient{DB: db, log: log}, nil
}

func (c *DBClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *DBClient) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.log.Error("Error closing PostgreSQL connection", "error", err)
		} else {
			c.log.Info("PostgreSQL connection closed")
		}
	}
}
