package idempotency

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

// ErrDuplicateKey signals that a record for the idempotency key already exists;
// the caller reads it back and decides what the duplicate means.
var ErrDuplicateKey = errors.New("idempotency key already exists")

type IdempotencyRepository interface {
	InsertPending(ctx context.Context, q sqlx.ExtContext, key, payloadHash string, expiresAt time.Time) error
	GetRecord(ctx context.Context, q sqlx.ExtContext, key string) (*model.IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, q sqlx.ExtContext, key string, result []byte) error
	MarkFailed(ctx context.Context, q sqlx.ExtContext, key, errMsg string) error
	ResetPending(ctx context.Context, q sqlx.ExtContext, key, payloadHash string, expiresAt, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, q sqlx.ExtContext, now time.Time, limit int) (int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewIdempotencyRepository(conn *sqlx.DB) IdempotencyRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertPending(ctx context.Context, q sqlx.ExtContext, key, payloadHash string, expiresAt time.Time) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO idempotency_record (idem_key, payload_hash, status, expires_at) VALUES (?, ?, ?, ?)",
		key, payloadHash, constant.IdempotencyStatusPending, expiresAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *SQL) GetRecord(ctx context.Context, q sqlx.ExtContext, key string) (*model.IdempotencyRecord, error) {
	var rec model.IdempotencyRecord
	err := sqlx.GetContext(ctx, q, &rec,
		"SELECT id, idem_key, payload_hash, status, expires_at, result, error, created_at FROM idempotency_record WHERE idem_key = ?",
		key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *SQL) MarkCompleted(ctx context.Context, q sqlx.ExtContext, key string, result []byte) error {
	_, err := q.ExecContext(ctx,
		"UPDATE idempotency_record SET status = ?, result = ?, error = '' WHERE idem_key = ? AND status = ?",
		constant.IdempotencyStatusCompleted, result, key, constant.IdempotencyStatusPending)
	return err
}

func (r *SQL) MarkFailed(ctx context.Context, q sqlx.ExtContext, key, errMsg string) error {
	_, err := q.ExecContext(ctx,
		"UPDATE idempotency_record SET status = ?, error = ? WHERE idem_key = ? AND status = ?",
		constant.IdempotencyStatusFailed, errMsg, key, constant.IdempotencyStatusPending)
	return err
}

// ResetPending reclaims a record for a fresh attempt. Only failed or expired
// records match the guard, so a concurrent in-flight attempt keeps its claim.
func (r *SQL) ResetPending(ctx context.Context, q sqlx.ExtContext, key, payloadHash string, expiresAt, now time.Time) (bool, error) {
	res, err := q.ExecContext(ctx,
		"UPDATE idempotency_record SET status = ?, payload_hash = ?, expires_at = ?, result = NULL, error = '' WHERE idem_key = ? AND (status = ? OR expires_at <= ?)",
		constant.IdempotencyStatusPending, payloadHash, expiresAt, key, constant.IdempotencyStatusFailed, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SQL) DeleteExpired(ctx context.Context, q sqlx.ExtContext, now time.Time, limit int) (int64, error) {
	res, err := q.ExecContext(ctx,
		"DELETE FROM idempotency_record WHERE expires_at <= ? LIMIT ?", now, limit)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
