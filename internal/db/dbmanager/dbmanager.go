// Package dbmanager owns the postgres connection pool. The rest of the db
// layer checks connections out through PooledDb and returns them via
// Conn.Close.
package dbmanager

import (
	"context"
	"database/sql"
	"sync/atomic"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/config"
)

type PooledDb interface {
	// Conn checks a connection out of the pool.
	Conn(ctx context.Context) (*Conn, error)
	// Stats returns the number of connection requests and returns.
	Stats() (requests, returns uint64)
	// Close closes the underlying pool.
	Close() error
}

// Conn is a checked-out pool connection.
type Conn struct {
	conn   *sql.Conn
	pool   *postgresqlDb
	closed atomic.Bool
}

// Conn exposes the underlying connection for query execution.
func (c *Conn) Conn() *sql.Conn {
	return c.conn
}

// Close returns the connection to the pool. Closing twice is a no-op.
func (c *Conn) Close(ctx context.Context) {
	if c.closed.Swap(true) {
		return
	}
	if err := c.conn.Close(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to return connection to pool")
	}
	c.pool.returns.Add(1)
}

type postgresqlDb struct {
	db       *sql.DB
	requests atomic.Uint64
	returns  atomic.Uint64
}

// NewPostgresqlDb opens a pool against the configured database using the pgx
// stdlib driver.
func NewPostgresqlDb(cfg *config.DatabaseConfig) (PooledDb, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	return &postgresqlDb{db: db}, nil
}

func (p *postgresqlDb) Conn(ctx context.Context) (*Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	p.requests.Add(1)
	return &Conn{conn: conn, pool: p}, nil
}

func (p *postgresqlDb) Stats() (requests, returns uint64) {
	return p.requests.Load(), p.returns.Load()
}

func (p *postgresqlDb) Close() error {
	return p.db.Close()
}
