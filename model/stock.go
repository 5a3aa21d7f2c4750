package model

import "time"

// StockEntry is one ledger row per product, variant and branch.
// quantity - reserved_quantity is the sellable available count and every
// mutation goes through a guarded conditional UPDATE so it never goes negative.
type StockEntry struct {
	ID               int64     `db:"id"`
	ProductID        uint64    `db:"product_id"`
	VariantSKU       string    `db:"variant_sku"`
	BranchID         uint64    `db:"branch_id"`
	Quantity         int64     `db:"quantity"`
	ReservedQuantity int64     `db:"reserved_quantity"`
	IsActive         bool      `db:"is_active"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (e *StockEntry) Available() int64 {
	return e.Quantity - e.ReservedQuantity
}

type StockItem struct {
	ProductID  uint64 `json:"product_id" db:"product_id" validate:"required"`
	VariantSKU string `json:"variant_sku,omitempty" db:"variant_sku"`
	Quantity   int64  `json:"quantity" db:"quantity" validate:"required,gt=0"`
}

// UnavailableItem describes one validation shortfall.
type UnavailableItem struct {
	ProductID  uint64 `json:"product_id"`
	VariantSKU string `json:"variant_sku,omitempty"`
	Requested  int64  `json:"requested"`
	Available  int64  `json:"available"`
	Shortage   int64  `json:"shortage"`
}

type ValidateStockRequest struct {
	BranchID uint64      `json:"branch_id" validate:"required"`
	Items    []StockItem `json:"items" validate:"required,min=1,dive"`
}

type ValidateStockResponse struct {
	Valid       bool              `json:"valid"`
	Unavailable []UnavailableItem `json:"unavailable,omitempty"`
}

type ReserveStockRequest struct {
	ReservationID string      `json:"reservation_id" validate:"required"`
	BranchID      uint64      `json:"branch_id" validate:"required"`
	Items         []StockItem `json:"items" validate:"required,min=1,dive"`
	TTLMinutes    int         `json:"ttl_minutes" validate:"omitempty,gt=0"`
	UserID        uint64      `json:"user_id,omitempty"`
	OrderID       uint64      `json:"order_id,omitempty"`
}

type ReserveStockResponse struct {
	ReservationID string    `json:"reservation_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type CommitReservationRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type CommitReservationResponse struct {
	ReservationID    string          `json:"reservation_id"`
	DecrementedItems []MovementEntry `json:"decremented_items"`
}

// StockMovement is one append-only audit line per committed decrement.
type StockMovement struct {
	ID           int64     `db:"id"`
	ProductID    uint64    `db:"product_id"`
	VariantSKU   string    `db:"variant_sku"`
	BranchID     uint64    `db:"branch_id"`
	Type         string    `db:"type"`
	Quantity     int64     `db:"quantity"`
	BalanceAfter int64     `db:"balance_after"`
	Reference    string    `db:"reference"`
	ActorID      string    `db:"actor_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type MovementEntry struct {
	ProductID    uint64 `json:"product_id"`
	VariantSKU   string `json:"variant_sku,omitempty"`
	Quantity     int64  `json:"quantity"`
	BalanceAfter int64  `json:"balance_after"`
}
