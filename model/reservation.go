package model

import (
	"time"

	"github.com/muhammadheryan/stock-coordinator/constant"
)

// StockReservation is a temporary hold on inventory. Once committed it is immutable.
type StockReservation struct {
	ID            int64                      `db:"id"`
	ReservationID string                     `db:"reservation_id"`
	BranchID      uint64                     `db:"branch_id"`
	Status        constant.ReservationStatus `db:"status"`
	PayloadHash   string                     `db:"payload_hash"`
	ExpiresAt     time.Time                  `db:"expires_at"`
	CleanupAt     *time.Time                 `db:"cleanup_at"`
	ClaimToken    *string                    `db:"claim_token"`
	ClaimedAt     *time.Time                 `db:"claimed_at"`
	OrderID       uint64                     `db:"order_id"`
	UserID        uint64                     `db:"user_id"`
	CreatedAt     time.Time                  `db:"created_at"`

	Items []ReservationItem `db:"-"`
}

type ReservationItem struct {
	ID            int64  `db:"id"`
	ReservationID string `db:"reservation_id"`
	ProductID     uint64 `db:"product_id"`
	VariantSKU    string `db:"variant_sku"`
	Quantity      int64  `db:"quantity"`
}

type InsertReservationItem struct {
	ReservationID string
	BranchID      uint64
	Status        constant.ReservationStatus
	PayloadHash   string
	ExpiresAt     time.Time
	OrderID       uint64
	UserID        uint64
	Items         []StockItem
}
