package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/config"
	"github.com/openmerce/catalogsrv/internal/db/dbmanager"
	"github.com/openmerce/catalogsrv/internal/db/models"
	"github.com/openmerce/catalogsrv/internal/db/postgresql"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// DB_ is the interface for the catalog database connection. One value wraps
// one checked-out connection; Close returns it to the pool.
type DB_ interface {
	// Combination entity
	GetCombination(ctx context.Context, id types.CombinationId) (*models.Combination, error)
	UpdateCombinationFields(ctx context.Context, c *models.Combination, fields []string) error
	DeleteCombination(ctx context.Context, id types.CombinationId) error
	CombinationExists(ctx context.Context, id types.CombinationId) error

	// Relationships
	GetProductID(ctx context.Context, id types.CombinationId) (types.ProductId, error)
	GetCombinationIDs(ctx context.Context, productID types.ProductId) ([]types.CombinationId, error)
	GetCombinationAttributeSets(ctx context.Context, productID types.ProductId) ([]models.CombinationAttributeSet, error)
	GetDefaultCombinationID(ctx context.Context, productID types.ProductId) (types.CombinationId, error)

	// Close returns the connection to the pool.
	Close(ctx context.Context)
}

var pool dbmanager.PooledDb

// Init creates the connection pool. It must be called once before ConnCtx;
// tests that fake DB_ never need it.
func Init(ctx context.Context, cfg *config.Config) error {
	pg, err := dbmanager.NewPostgresqlDb(&cfg.Database)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create db pool")
		return err
	}
	pool = pg
	return nil
}

func Conn(ctx context.Context) *dbmanager.Conn {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "CatalogDb"

// ConnCtx checks a connection out of the pool and stores it in the context.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	if conn == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxDbKey, DB_(postgresql.NewCatalogDb(conn)))
}

// ContextWithDB stores an explicit DB_ in the context. Used by tests to
// substitute a fake for the postgres-backed implementation.
func ContextWithDB(ctx context.Context, d DB_) context.Context {
	return context.WithValue(ctx, ctxDbKey, d)
}

func DB(ctx context.Context) DB_ {
	if d, ok := ctx.Value(ctxDbKey).(DB_); ok {
		return d
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
