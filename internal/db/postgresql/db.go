package postgresql

import (
	"context"
	"database/sql"

	"github.com/openmerce/catalogsrv/internal/db/dbmanager"
)

type catalogDb struct {
	conn *dbmanager.Conn
}

func NewCatalogDb(conn *dbmanager.Conn) *catalogDb {
	return &catalogDb{conn: conn}
}

func (h *catalogDb) c() *sql.Conn {
	return h.conn.Conn()
}

func (h *catalogDb) Close(ctx context.Context) {
	h.conn.Close(ctx)
}
