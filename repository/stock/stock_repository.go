package stock

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-coordinator/model"
)

// StockRepository is the data access layer for the stock ledger. Every method
// takes an sqlx.ExtContext so the same statements run inside a transaction or
// directly on the pool when the coordinator is on its fallback path.
//
// Mutations are single guarded UPDATEs: the availability precondition lives in
// the WHERE clause, so the quantity >= reserved_quantity >= 0 invariant holds
// without read-then-write locking.
type StockRepository interface {
	EnsureEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64) error
	GetEntries(ctx context.Context, q sqlx.ExtContext, branchID uint64, items []model.StockItem) ([]model.StockEntry, error)
	GetQuantity(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64) (int64, error)
	ReserveEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error)
	UnreserveEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error)
	CommitEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error)
	RecreditEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) error
	InsertMovement(ctx context.Context, q sqlx.ExtContext, movement *model.StockMovement) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

// EnsureEntry lazily creates the ledger row for a product/branch pair.
func (r *SQL) EnsureEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64) error {
	_, err := q.ExecContext(ctx,
		"INSERT IGNORE INTO stock_entry (product_id, variant_sku, branch_id, quantity, reserved_quantity, is_active) VALUES (?, ?, ?, 0, 0, 1)",
		productID, variantSKU, branchID)
	return err
}

func (r *SQL) GetEntries(ctx context.Context, q sqlx.ExtContext, branchID uint64, items []model.StockItem) ([]model.StockEntry, error) {
	if len(items) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*2+1)
	args = append(args, branchID)
	for _, it := range items {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, it.ProductID, it.VariantSKU)
	}

	query := "SELECT id, product_id, variant_sku, branch_id, quantity, reserved_quantity, is_active, updated_at FROM stock_entry WHERE branch_id = ? AND (product_id, variant_sku) IN (" + strings.Join(placeholders, ", ") + ")"

	entries := make([]model.StockEntry, 0, len(items))
	if err := sqlx.SelectContext(ctx, q, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SQL) GetQuantity(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64) (int64, error) {
	var quantity int64
	err := sqlx.GetContext(ctx, q, &quantity,
		"SELECT quantity FROM stock_entry WHERE product_id = ? AND variant_sku = ? AND branch_id = ?",
		productID, variantSKU, branchID)
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

// ReserveEntry increments reserved_quantity only when enough unreserved stock
// remains. Returns false when the guard rejected the increment.
func (r *SQL) ReserveEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE stock_entry SET reserved_quantity = reserved_quantity + ? WHERE product_id = ? AND variant_sku = ? AND branch_id = ? AND is_active = 1 AND quantity >= reserved_quantity + ?",
		quantity, productID, variantSKU, branchID, quantity)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UnreserveEntry returns a hold to the available pool. Used by release and by
// per-line compensation when a later line in the same call fails.
func (r *SQL) UnreserveEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE stock_entry SET reserved_quantity = reserved_quantity - ? WHERE product_id = ? AND variant_sku = ? AND branch_id = ? AND reserved_quantity >= ?",
		quantity, productID, variantSKU, branchID, quantity)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CommitEntry converts a hold into a final decrement of both counters.
func (r *SQL) CommitEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) (bool, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE stock_entry SET quantity = quantity - ?, reserved_quantity = reserved_quantity - ? WHERE product_id = ? AND variant_sku = ? AND branch_id = ? AND quantity >= ? AND reserved_quantity >= ?",
		quantity, quantity, productID, variantSKU, branchID, quantity, quantity)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RecreditEntry reverses a committed decrement during compensation. Both
// counters only grow here, so no guard is needed.
func (r *SQL) RecreditEntry(ctx context.Context, q sqlx.ExtContext, productID uint64, variantSKU string, branchID uint64, quantity int64) error {
	_, err := q.ExecContext(ctx,
		"UPDATE stock_entry SET quantity = quantity + ?, reserved_quantity = reserved_quantity + ? WHERE product_id = ? AND variant_sku = ? AND branch_id = ?",
		quantity, quantity, productID, variantSKU, branchID)
	return err
}

func (r *SQL) InsertMovement(ctx context.Context, q sqlx.ExtContext, movement *model.StockMovement) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO stock_movement (product_id, variant_sku, branch_id, type, quantity, balance_after, reference, actor_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		movement.ProductID, movement.VariantSKU, movement.BranchID, movement.Type, movement.Quantity, movement.BalanceAfter, movement.Reference, movement.ActorID)
	return err
}
