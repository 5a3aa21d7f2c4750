package reaper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-coordinator/application/stock"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	"github.com/muhammadheryan/stock-coordinator/constant"
	idemrepo "github.com/muhammadheryan/stock-coordinator/repository/idempotency"
	reservationrepo "github.com/muhammadheryan/stock-coordinator/repository/reservation"
	"github.com/muhammadheryan/stock-coordinator/utils/logger"
	"go.uber.org/zap"
)

// ReaperApp reclaims abandoned reservations on a fixed interval, independent
// of request traffic. Multiple instances can run concurrently: each expired
// reservation is claimed with an atomic conditional update before release, so
// no reservation is processed twice.
type ReaperApp interface {
	Start(ctx context.Context)
	RunOnce(ctx context.Context) (int, error)
}

type reaperAppImpl struct {
	config          *config.Config
	db              *sqlx.DB
	reservationRepo reservationrepo.ReservationRepository
	idemRepo        idemrepo.IdempotencyRepository
	stockApp        stock.StockApp
}

func NewReaperApp(config *config.Config, db *sqlx.DB, reservationRepo reservationrepo.ReservationRepository, idemRepo idemrepo.IdempotencyRepository, stockApp stock.StockApp) ReaperApp {
	return &reaperAppImpl{
		config:          config,
		db:              db,
		reservationRepo: reservationRepo,
		idemRepo:        idemRepo,
		stockApp:        stockApp,
	}
}

// Start runs ticks until the context is cancelled.
func (s *reaperAppImpl) Start(ctx context.Context) {
	ticker := time.NewTicker(s.config.Reaper.Interval)
	defer ticker.Stop()

	logger.Info("reaper started", zap.Duration("interval", s.config.Reaper.Interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("reaper stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				logger.Error("[reaper] tick failed", zap.String("error", err.Error()))
			}
		}
	}
}

// RunOnce claims and releases expired reservations, oldest first, until none
// remain or the batch cap bounds the tick. Claims held past their lease by a
// worker that died mid-release are claimed again. It also sweeps reservations
// past their retention window and expired idempotency records.
func (s *reaperAppImpl) RunOnce(ctx context.Context) (int, error) {
	released := 0
	for released < s.config.Reaper.BatchSize {
		claimToken := uuid.NewString()
		now := time.Now()
		claimed, err := s.reservationRepo.ClaimExpired(ctx, s.db, claimToken, now, now.Add(-s.config.Reaper.ClaimLease))
		if err != nil {
			return released, err
		}
		if claimed == nil {
			break
		}

		if _, err := s.stockApp.Release(ctx, claimed.ReservationID, constant.ReservationStatusExpired); err != nil {
			logger.Error("[reaper] release failed",
				zap.String("reservation_id", claimed.ReservationID),
				zap.String("error", err.Error()))
			continue
		}
		released++
		logger.Info("[reaper] reservation expired",
			zap.String("reservation_id", claimed.ReservationID),
			zap.Uint64("branch_id", claimed.BranchID))
	}

	s.sweep(ctx)
	return released, nil
}

func (s *reaperAppImpl) sweep(ctx context.Context) {
	now := time.Now()
	if n, err := s.reservationRepo.DeleteCleanedUp(ctx, s.db, now, s.config.Reaper.BatchSize); err != nil {
		logger.Error("[reaper] reservation sweep failed", zap.String("error", err.Error()))
	} else if n > 0 {
		logger.Debug("[reaper] reservations purged", zap.Int64("count", n))
	}

	if n, err := s.idemRepo.DeleteExpired(ctx, s.db, now, s.config.Reaper.BatchSize); err != nil {
		logger.Error("[reaper] idempotency sweep failed", zap.String("error", err.Error()))
	} else if n > 0 {
		logger.Debug("[reaper] idempotency records purged", zap.Int64("count", n))
	}
}
