package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ledgerline/crm-intelligence-api/internal/config"
	_ "github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
)

// TenantSetting é lido pelas políticas de RLS das funções do schema crm
const TenantSetting = "app.current_tenant"

type Connection struct {
	*sql.DB
}

// NewConnection abre o pool e confirma que o banco responde
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao abrir conexão com o PostgreSQL")
	}

	configurePool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "PostgreSQL não respondeu")
	}

	return &Connection{DB: db}, nil
}

// configurePool dimensiona o pool; cada tenant dispara quatro buscas em paralelo
func configurePool(db *sql.DB, cfg config.Database) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTenantTransaction executa fn numa transação com o tenant configurado para as políticas de RLS.
// Sem tenant, a transação roda sem escopo.
func (c *Connection) RunInTenantTransaction(ctx context.Context, tenantID string, fn func(Queryer) error) error {
	return c.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if tenantID != "" {
			if _, err := tx.ExecContext(ctx, "SELECT set_config($1, $2, true)", TenantSetting, tenantID); err != nil {
				return pkgerrors.Wrap(err, "erro ao definir o tenant da transação")
			}
		}
		return fn(tx)
	})
}

// RunInTransaction executa fn numa transação; o erro de rollback é devolvido junto do erro original
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "erro ao iniciar transação")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, pkgerrors.Wrap(rbErr, "erro no rollback"))
		}
		return err
	}

	return pkgerrors.Wrap(tx.Commit(), "erro ao confirmar transação")
}
