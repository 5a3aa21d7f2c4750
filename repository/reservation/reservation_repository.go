package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/model"
)

// ErrDuplicateReservation signals a unique-constraint violation on reservation_id,
// i.e. a concurrent caller inserted the same reservation first.
var ErrDuplicateReservation = errors.New("reservation id already exists")

// ReservationRepository owns stock_reservation and stock_reservation_item rows.
// Status transitions are guarded UPDATEs conditioned on the current status, so
// they stay race-free across worker processes.
type ReservationRepository interface {
	InsertReservation(ctx context.Context, q sqlx.ExtContext, req *model.InsertReservationItem) error
	GetReservation(ctx context.Context, q sqlx.ExtContext, reservationID string) (*model.StockReservation, error)
	MarkActive(ctx context.Context, q sqlx.ExtContext, reservationID string) (bool, error)
	MarkCommitted(ctx context.Context, q sqlx.ExtContext, reservationID string) (bool, error)
	MarkTerminated(ctx context.Context, q sqlx.ExtContext, reservationID string, status constant.ReservationStatus, cleanupAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, q sqlx.ExtContext, claimToken string, now, staleBefore time.Time) (*model.StockReservation, error)
	DeleteCleanedUp(ctx context.Context, q sqlx.ExtContext, now time.Time, limit int) (int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewReservationRepository(conn *sqlx.DB) ReservationRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertReservation(ctx context.Context, q sqlx.ExtContext, req *model.InsertReservationItem) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO stock_reservation (reservation_id, branch_id, status, payload_hash, expires_at, order_id, user_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		req.ReservationID, req.BranchID, req.Status, req.PayloadHash, req.ExpiresAt, req.OrderID, req.UserID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateReservation
		}
		return err
	}

	for _, it := range req.Items {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO stock_reservation_item (reservation_id, product_id, variant_sku, quantity) VALUES (?, ?, ?, ?)",
			req.ReservationID, it.ProductID, it.VariantSKU, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// GetReservation returns the reservation with its items, or nil when absent.
func (r *SQL) GetReservation(ctx context.Context, q sqlx.ExtContext, reservationID string) (*model.StockReservation, error) {
	var res model.StockReservation
	err := sqlx.GetContext(ctx, q, &res,
		"SELECT id, reservation_id, branch_id, status, payload_hash, expires_at, cleanup_at, claim_token, claimed_at, order_id, user_id, created_at FROM stock_reservation WHERE reservation_id = ?",
		reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items := make([]model.ReservationItem, 0)
	if err := sqlx.SelectContext(ctx, q, &items,
		"SELECT id, reservation_id, product_id, variant_sku, quantity FROM stock_reservation_item WHERE reservation_id = ? ORDER BY id",
		reservationID); err != nil {
		return nil, err
	}
	res.Items = items
	return &res, nil
}

func (r *SQL) MarkActive(ctx context.Context, q sqlx.ExtContext, reservationID string) (bool, error) {
	return r.transition(ctx, q,
		"UPDATE stock_reservation SET status = ? WHERE reservation_id = ? AND status = ?",
		constant.ReservationStatusActive, reservationID, constant.ReservationStatusPending)
}

func (r *SQL) MarkCommitted(ctx context.Context, q sqlx.ExtContext, reservationID string) (bool, error) {
	return r.transition(ctx, q,
		"UPDATE stock_reservation SET status = ? WHERE reservation_id = ? AND status = ?",
		constant.ReservationStatusCommitted, reservationID, constant.ReservationStatusActive)
}

// MarkTerminated moves a reservation into released/expired and schedules
// physical deletion. Committed reservations never match the guard.
func (r *SQL) MarkTerminated(ctx context.Context, q sqlx.ExtContext, reservationID string, status constant.ReservationStatus, cleanupAt time.Time) (bool, error) {
	return r.transition(ctx, q,
		"UPDATE stock_reservation SET status = ?, cleanup_at = ?, claim_token = NULL, claimed_at = NULL WHERE reservation_id = ? AND status IN (?, ?, ?)",
		status, cleanupAt, reservationID,
		constant.ReservationStatusPending, constant.ReservationStatusActive, constant.ReservationStatusReleasing)
}

// ClaimExpired atomically flips the oldest expired active reservation to
// releasing, tagged with the caller's claim token and timestamp. The
// conditional UPDATE is what serializes concurrent reaper instances; a claim
// that matched no rows means nothing is left to reclaim.
//
// A releasing row whose claim is older than staleBefore was claimed by a
// worker that died before releasing it, so it is claimable again.
func (r *SQL) ClaimExpired(ctx context.Context, q sqlx.ExtContext, claimToken string, now, staleBefore time.Time) (*model.StockReservation, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE stock_reservation SET status = ?, claim_token = ?, claimed_at = ? WHERE (status = ? AND expires_at <= ?) OR (status = ? AND claimed_at <= ?) ORDER BY expires_at ASC LIMIT 1",
		constant.ReservationStatusReleasing, claimToken, now,
		constant.ReservationStatusActive, now,
		constant.ReservationStatusReleasing, staleBefore)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	var claimed model.StockReservation
	if err := sqlx.GetContext(ctx, q, &claimed,
		"SELECT id, reservation_id, branch_id, status, payload_hash, expires_at, cleanup_at, claim_token, claimed_at, order_id, user_id, created_at FROM stock_reservation WHERE claim_token = ? AND status = ?",
		claimToken, constant.ReservationStatusReleasing); err != nil {
		return nil, err
	}

	items := make([]model.ReservationItem, 0)
	if err := sqlx.SelectContext(ctx, q, &items,
		"SELECT id, reservation_id, product_id, variant_sku, quantity FROM stock_reservation_item WHERE reservation_id = ? ORDER BY id",
		claimed.ReservationID); err != nil {
		return nil, err
	}
	claimed.Items = items
	return &claimed, nil
}

// DeleteCleanedUp physically removes terminated reservations whose retention
// window has passed.
func (r *SQL) DeleteCleanedUp(ctx context.Context, q sqlx.ExtContext, now time.Time, limit int) (int64, error) {
	rows, err := q.QueryxContext(ctx,
		"SELECT reservation_id FROM stock_reservation WHERE cleanup_at IS NOT NULL AND cleanup_at <= ? LIMIT ?", now, limit)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	var deleted int64
	for _, id := range ids {
		if _, err := q.ExecContext(ctx, "DELETE FROM stock_reservation_item WHERE reservation_id = ?", id); err != nil {
			return deleted, err
		}
		res, err := q.ExecContext(ctx, "DELETE FROM stock_reservation WHERE reservation_id = ? AND cleanup_at IS NOT NULL AND cleanup_at <= ?", id, now)
		if err != nil {
			return deleted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

func (r *SQL) transition(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (bool, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
