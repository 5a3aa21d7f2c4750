package model

import (
	"time"

	"github.com/muhammadheryan/stock-coordinator/constant"
)

// IdempotencyRecord deduplicates retried requests by caller-supplied key.
// An expired record is treated as absent even before it is physically purged.
type IdempotencyRecord struct {
	ID        int64                      `db:"id"`
	Key       string                     `db:"idem_key"`
	Hash      string                     `db:"payload_hash"`
	Status    constant.IdempotencyStatus `db:"status"`
	ExpiresAt time.Time                  `db:"expires_at"`
	Result    []byte                     `db:"result"`
	Error     string                     `db:"error"`
	CreatedAt time.Time                  `db:"created_at"`
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// CheckResult is what the idempotency gate returns to its caller.
type CheckResult struct {
	IsNew  bool
	Result []byte
}
