package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

// Pool sizes the connection pool. Zero fields take the defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (p Pool) withDefaults() Pool {
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = 25
	}
	if p.MaxIdleConns <= 0 || p.MaxIdleConns > p.MaxOpenConns {
		p.MaxIdleConns = p.MaxOpenConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = 5 * time.Minute
	}
	if p.ConnMaxIdleTime <= 0 {
		p.ConnMaxIdleTime = time.Minute
	}
	return p
}

func configure(conn *sql.DB, p Pool) {
	p = p.withDefaults()
	conn.SetMaxOpenConns(p.MaxOpenConns)
	conn.SetMaxIdleConns(p.MaxIdleConns)
	conn.SetConnMaxLifetime(p.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(p.ConnMaxIdleTime)
}

// Connect opens a postgres handle and pings it under ctx. The handle is closed
// again when the ping fails.
func Connect(ctx context.Context, dsn string, pool Pool) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}
	configure(conn, pool)

	if err := conn.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database: %w", err), conn.Close())
	}
	return conn, nil
}
