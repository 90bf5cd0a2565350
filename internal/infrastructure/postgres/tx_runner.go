package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nixnvs/blossomstock-web/internal/application/recuento"
	"github.com/nixnvs/blossomstock-web/internal/domain/repository"
)

// Ensure TxRunner implements recuento.TxRunner.
var _ recuento.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Garantiza que la apertura de recuentos y los borrados en cascada sean todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recuentoRepo repository.RecuentoRepository,
	itemRepo repository.ItemRepository,
	reportRepo repository.ReportRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recuentoRepo := NewRecuentoRepository(tx)
	itemRepo := NewItemRepository(tx)
	reportRepo := NewReportRepository(tx)

	if err := fn(recuentoRepo, itemRepo, reportRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
