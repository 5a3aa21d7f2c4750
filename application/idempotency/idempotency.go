package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/model"
	idemrepo "github.com/muhammadheryan/stock-coordinator/repository/idempotency"
	cerrors "github.com/muhammadheryan/stock-coordinator/utils/errors"
	"github.com/muhammadheryan/stock-coordinator/utils/hash"
	"github.com/muhammadheryan/stock-coordinator/utils/logger"
	"go.uber.org/zap"
)

// Operation is the side-effecting work guarded by the gate, e.g. "reserve
// stock and create order".
type Operation func(ctx context.Context) (interface{}, error)

// IdempotencyApp wraps operations with check/complete/fail semantics so a
// retried request returns the cached result instead of re-running side effects.
// It exclusively owns idempotency_record transitions.
type IdempotencyApp interface {
	Check(ctx context.Context, key string, payload interface{}) (*model.CheckResult, error)
	Complete(ctx context.Context, key string, result []byte)
	Fail(ctx context.Context, key string, opErr error)
	Execute(ctx context.Context, key string, payload interface{}, op Operation) ([]byte, error)
}

type idempotencyAppImpl struct {
	config   *config.Config
	db       *sqlx.DB
	idemRepo idemrepo.IdempotencyRepository
}

func NewIdempotencyApp(config *config.Config, db *sqlx.DB, idemRepo idemrepo.IdempotencyRepository) IdempotencyApp {
	return &idempotencyAppImpl{
		config:   config,
		db:       db,
		idemRepo: idemRepo,
	}
}

// Check claims the key for this attempt or resolves what the duplicate means.
// A request without a key is always treated as new.
func (s *idempotencyAppImpl) Check(ctx context.Context, key string, payload interface{}) (*model.CheckResult, error) {
	if key == "" {
		return &model.CheckResult{IsNew: true}, nil
	}

	payloadHash, err := hash.Payload(payload)
	if err != nil {
		logger.Error("[Check] payload hash failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.Idempotency.TTL)

	err = s.idemRepo.InsertPending(ctx, s.db, key, payloadHash, expiresAt)
	if err == nil {
		return &model.CheckResult{IsNew: true}, nil
	}
	if !errors.Is(err, idemrepo.ErrDuplicateKey) {
		logger.Error("[Check] insert pending failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	rec, err := s.idemRepo.GetRecord(ctx, s.db, key)
	if err != nil {
		logger.Error("[Check] get record failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if rec == nil {
		// Record purged between insert and read-back; a concurrent sweep
		// raced us. Claim again.
		if err := s.idemRepo.InsertPending(ctx, s.db, key, payloadHash, expiresAt); err != nil {
			if errors.Is(err, idemrepo.ErrDuplicateKey) {
				return nil, cerrors.SetCustomError(constant.ErrIdempotencyConflict)
			}
			logger.Error("[Check] reinsert pending failed", zap.String("error", err.Error()))
			return nil, cerrors.SetCustomError(constant.ErrInternal)
		}
		return &model.CheckResult{IsNew: true}, nil
	}

	// An expired record is logically absent even before physical purge.
	if rec.Expired(now) {
		reset, err := s.idemRepo.ResetPending(ctx, s.db, key, payloadHash, expiresAt, now)
		if err != nil {
			logger.Error("[Check] reset expired failed", zap.String("error", err.Error()))
			return nil, cerrors.SetCustomError(constant.ErrInternal)
		}
		if !reset {
			return nil, cerrors.SetCustomError(constant.ErrIdempotencyConflict)
		}
		return &model.CheckResult{IsNew: true}, nil
	}

	if rec.Hash != payloadHash {
		return nil, cerrors.SetCustomError(constant.ErrDuplicatePayload)
	}

	switch rec.Status {
	case constant.IdempotencyStatusCompleted:
		return &model.CheckResult{IsNew: false, Result: rec.Result}, nil
	case constant.IdempotencyStatusFailed:
		reset, err := s.idemRepo.ResetPending(ctx, s.db, key, payloadHash, expiresAt, now)
		if err != nil {
			logger.Error("[Check] reset failed record", zap.String("error", err.Error()))
			return nil, cerrors.SetCustomError(constant.ErrInternal)
		}
		if !reset {
			return nil, cerrors.SetCustomError(constant.ErrIdempotencyConflict)
		}
		return &model.CheckResult{IsNew: true}, nil
	default:
		// pending: a concurrent duplicate is still in flight
		return nil, cerrors.SetCustomError(constant.ErrIdempotencyConflict)
	}
}

// Complete caches the operation's success result. Best effort: failure here
// must never block the caller's success path.
func (s *idempotencyAppImpl) Complete(ctx context.Context, key string, result []byte) {
	if key == "" {
		return
	}
	if err := s.idemRepo.MarkCompleted(ctx, s.db, key, result); err != nil {
		logger.Error("[Complete] mark completed failed",
			zap.String("key", key),
			zap.String("error", err.Error()))
	}
}

// Fail records the operation's failure so a later retry is allowed through.
func (s *idempotencyAppImpl) Fail(ctx context.Context, key string, opErr error) {
	if key == "" {
		return
	}
	if err := s.idemRepo.MarkFailed(ctx, s.db, key, opErr.Error()); err != nil {
		logger.Error("[Fail] mark failed failed",
			zap.String("key", key),
			zap.String("error", err.Error()))
	}
}

// Execute runs op under the gate: a cached result short-circuits, a fresh run
// is recorded as completed or failed, and op's own error propagates unchanged.
func (s *idempotencyAppImpl) Execute(ctx context.Context, key string, payload interface{}, op Operation) ([]byte, error) {
	check, err := s.Check(ctx, key, payload)
	if err != nil {
		return nil, err
	}
	if !check.IsNew {
		return check.Result, nil
	}

	result, opErr := op(ctx)
	if opErr != nil {
		s.Fail(ctx, key, opErr)
		return nil, opErr
	}

	raw, err := json.Marshal(result)
	if err != nil {
		logger.Error("[Execute] marshal result failed", zap.String("error", err.Error()))
		s.Fail(ctx, key, err)
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	s.Complete(ctx, key, raw)
	return raw, nil
}
