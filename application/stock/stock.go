package stock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/model"
	redisrepo "github.com/muhammadheryan/stock-coordinator/repository/redis"
	reservationrepo "github.com/muhammadheryan/stock-coordinator/repository/reservation"
	stockrepo "github.com/muhammadheryan/stock-coordinator/repository/stock"
	txrepo "github.com/muhammadheryan/stock-coordinator/repository/tx"
	"github.com/muhammadheryan/stock-coordinator/thirdparty/rabbitmq"
	cerrors "github.com/muhammadheryan/stock-coordinator/utils/errors"
	"github.com/muhammadheryan/stock-coordinator/utils/hash"
	"github.com/muhammadheryan/stock-coordinator/utils/logger"
	"go.uber.org/zap"
)

// StockApp coordinates reservations against the stock ledger. It is the only
// component that mutates stock_entry and stock_reservation rows.
type StockApp interface {
	Validate(ctx context.Context, req *model.ValidateStockRequest, throwOnFailure bool) (*model.ValidateStockResponse, error)
	Reserve(ctx context.Context, req *model.ReserveStockRequest) (*model.ReserveStockResponse, error)
	CommitReservation(ctx context.Context, reservationID, reference, actorID string) (*model.CommitReservationResponse, error)
	Release(ctx context.Context, reservationID string, status constant.ReservationStatus) (bool, error)
}

type stockAppImpl struct {
	config          *config.Config
	db              *sqlx.DB
	txRepo          txrepo.TxRepository
	stockRepo       stockrepo.StockRepository
	reservationRepo reservationrepo.ReservationRepository
	redisRepo       redisrepo.Repository
	publisher       *rabbitmq.Publisher
}

func NewStockApp(config *config.Config, db *sqlx.DB, txRepo txrepo.TxRepository, stockRepo stockrepo.StockRepository, reservationRepo reservationrepo.ReservationRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) StockApp {
	return &stockAppImpl{
		config:          config,
		db:              db,
		txRepo:          txRepo,
		stockRepo:       stockRepo,
		reservationRepo: reservationRepo,
		redisRepo:       redisRepo,
		publisher:       publisher,
	}
}

// run executes fn inside a transaction when the store supports one, and falls
// back to running the same sequence directly on the pool otherwise. fn carries
// its own per-line compensation, so the invariant holds on both paths; the
// fallback only widens the crash window between statements.
func (s *stockAppImpl) run(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		if errors.Is(err, txrepo.ErrTxNotSupported) {
			return fn(s.db)
		}
		logger.Error("[run] begin tx failed", zap.String("error", err.Error()))
		return cerrors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[run] commit tx failed", zap.String("error", err.Error()))
		return cerrors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// availabilityCacheTTL bounds how stale a cached availability read can get
// between a ledger mutation and its cache invalidation.
const availabilityCacheTTL = 30 * time.Second

// Validate computes quantity - reserved_quantity per line, serving cached
// availability when every line is cached. Read-only, no ledger side effects.
func (s *stockAppImpl) Validate(ctx context.Context, req *model.ValidateStockRequest, throwOnFailure bool) (*model.ValidateStockResponse, error) {
	if len(req.Items) == 0 {
		return nil, cerrors.SetCustomError(constant.ErrInvalidRequest)
	}

	available, cached := s.cachedAvailability(ctx, req.BranchID, req.Items)
	if !cached {
		entries, err := s.stockRepo.GetEntries(ctx, s.db, req.BranchID, req.Items)
		if err != nil {
			logger.Error("[Validate] batch lookup failed", zap.String("error", err.Error()))
			return nil, cerrors.SetCustomError(constant.ErrInternal)
		}
		available = availabilityOf(entries)
		s.cacheAvailability(ctx, req.BranchID, req.Items, available)
	}

	unavailable := shortfallsFrom(available, req.Items)
	if len(unavailable) > 0 && throwOnFailure {
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrInsufficientStock, unavailable)
	}

	return &model.ValidateStockResponse{
		Valid:       len(unavailable) == 0,
		Unavailable: unavailable,
	}, nil
}

// shortfalls is the transactional availability check used inside reserve. It
// always reads the ledger directly, never the cache.
func (s *stockAppImpl) shortfalls(ctx context.Context, q sqlx.ExtContext, branchID uint64, items []model.StockItem) ([]model.UnavailableItem, error) {
	entries, err := s.stockRepo.GetEntries(ctx, q, branchID, items)
	if err != nil {
		return nil, err
	}
	return shortfallsFrom(availabilityOf(entries), items), nil
}

func availabilityOf(entries []model.StockEntry) map[string]int64 {
	available := make(map[string]int64, len(entries))
	for i := range entries {
		e := &entries[i]
		if !e.IsActive {
			continue
		}
		available[entryKey(e.ProductID, e.VariantSKU)] = e.Available()
	}
	return available
}

func shortfallsFrom(available map[string]int64, items []model.StockItem) []model.UnavailableItem {
	unavailable := make([]model.UnavailableItem, 0)
	for _, it := range items {
		avail := available[entryKey(it.ProductID, it.VariantSKU)]
		if avail < it.Quantity {
			unavailable = append(unavailable, model.UnavailableItem{
				ProductID:  it.ProductID,
				VariantSKU: it.VariantSKU,
				Requested:  it.Quantity,
				Available:  avail,
				Shortage:   it.Quantity - avail,
			})
		}
	}
	return unavailable
}

// cachedAvailability returns the cached availability per line, or false when
// any line is missing from the cache.
func (s *stockAppImpl) cachedAvailability(ctx context.Context, branchID uint64, items []model.StockItem) (map[string]int64, bool) {
	available := make(map[string]int64, len(items))
	for _, it := range items {
		v, err := s.redisRepo.Get(ctx, redisrepo.AvailabilityKey(branchID, it.ProductID, it.VariantSKU))
		if err != nil || v == "" {
			return nil, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		available[entryKey(it.ProductID, it.VariantSKU)] = n
	}
	return available, true
}

func (s *stockAppImpl) cacheAvailability(ctx context.Context, branchID uint64, items []model.StockItem, available map[string]int64) {
	for _, it := range items {
		key := redisrepo.AvailabilityKey(branchID, it.ProductID, it.VariantSKU)
		value := strconv.FormatInt(available[entryKey(it.ProductID, it.VariantSKU)], 10)
		if err := s.redisRepo.SetWithTTL(ctx, key, value, availabilityCacheTTL); err != nil {
			logger.Error("[Validate] cache availability failed",
				zap.String("key", key),
				zap.String("error", err.Error()))
		}
	}
}

func entryKey(productID uint64, variantSKU string) string {
	return fmt.Sprintf("%d|%s", productID, variantSKU)
}

// Reserve places a hold on every line item, idempotently by reservation id and
// payload hash. The pending row is inserted before any counter moves so a crash
// mid-call always leaves an auditable trace for the reaper.
func (s *stockAppImpl) Reserve(ctx context.Context, req *model.ReserveStockRequest) (*model.ReserveStockResponse, error) {
	if req.ReservationID == "" || len(req.Items) == 0 {
		return nil, cerrors.SetCustomError(constant.ErrInvalidRequest)
	}

	payloadHash, err := hash.Payload(reservePayload{BranchID: req.BranchID, Items: req.Items})
	if err != nil {
		logger.Error("[Reserve] payload hash failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}

	now := time.Now()
	existing, err := s.reservationRepo.GetReservation(ctx, s.db, req.ReservationID)
	if err != nil {
		logger.Error("[Reserve] get reservation failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return s.reserveRetry(existing, payloadHash, now)
	}

	ttl := s.config.Reservation.DefaultTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}
	expiresAt := now.Add(ttl)

	err = s.run(ctx, func(q sqlx.ExtContext) error {
		for _, it := range req.Items {
			if err := s.stockRepo.EnsureEntry(ctx, q, it.ProductID, it.VariantSKU, req.BranchID); err != nil {
				logger.Error("[Reserve] ensure entry failed", zap.String("error", err.Error()))
				return cerrors.SetCustomError(constant.ErrInternal)
			}
		}

		unavailable, err := s.shortfalls(ctx, q, req.BranchID, req.Items)
		if err != nil {
			logger.Error("[Reserve] validate failed", zap.String("error", err.Error()))
			return cerrors.SetCustomError(constant.ErrInternal)
		}
		if len(unavailable) > 0 {
			return cerrors.SetCustomErrorWithDetails(constant.ErrInsufficientStock, unavailable)
		}

		if err := s.reservationRepo.InsertReservation(ctx, q, &model.InsertReservationItem{
			ReservationID: req.ReservationID,
			BranchID:      req.BranchID,
			Status:        constant.ReservationStatusPending,
			PayloadHash:   payloadHash,
			ExpiresAt:     expiresAt,
			OrderID:       req.OrderID,
			UserID:        req.UserID,
			Items:         req.Items,
		}); err != nil {
			if errors.Is(err, reservationrepo.ErrDuplicateReservation) {
				return cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, req.ReservationID)
			}
			logger.Error("[Reserve] insert reservation failed", zap.String("error", err.Error()))
			return cerrors.SetCustomError(constant.ErrInternal)
		}

		for i, it := range req.Items {
			applied, err := s.stockRepo.ReserveEntry(ctx, q, it.ProductID, it.VariantSKU, req.BranchID, it.Quantity)
			if err != nil {
				logger.Error("[Reserve] reserve entry failed", zap.String("error", err.Error()))
				s.compensateReserve(ctx, q, req, i)
				return cerrors.SetCustomError(constant.ErrInternal)
			}
			if !applied {
				// Guard rejected the increment: a concurrent reservation won
				// the line. Return every hold taken so far in this call.
				s.compensateReserve(ctx, q, req, i)
				return cerrors.SetCustomErrorWithDetails(constant.ErrInsufficientStock, []model.UnavailableItem{
					{ProductID: it.ProductID, VariantSKU: it.VariantSKU, Requested: it.Quantity},
				})
			}
		}

		activated, err := s.reservationRepo.MarkActive(ctx, q, req.ReservationID)
		if err != nil || !activated {
			if err != nil {
				logger.Error("[Reserve] mark active failed", zap.String("error", err.Error()))
			}
			s.compensateReserve(ctx, q, req, len(req.Items))
			return cerrors.SetCustomError(constant.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.fireStockEvent(ctx, "reserved", req.ReservationID, req.BranchID, req.OrderID, req.Items)
	if s.publisher != nil {
		if err := s.publisher.PublishReservationExpiration(rabbitmq.ReservationExpirationMessage{
			ReservationID: req.ReservationID,
			ExpiresAt:     expiresAt,
		}); err != nil {
			logger.Error("[Reserve] publish expiration notice", zap.String("error", err.Error()))
		}
	}

	return &model.ReserveStockResponse{
		ReservationID: req.ReservationID,
		ExpiresAt:     expiresAt,
	}, nil
}

type reservePayload struct {
	BranchID uint64            `json:"branch_id"`
	Items    []model.StockItem `json:"items"`
}

// reserveRetry resolves a reserve call whose reservation id already exists.
func (s *stockAppImpl) reserveRetry(existing *model.StockReservation, payloadHash string, now time.Time) (*model.ReserveStockResponse, error) {
	if existing.PayloadHash != payloadHash {
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, existing.ReservationID)
	}

	switch existing.Status {
	case constant.ReservationStatusActive:
		if now.Before(existing.ExpiresAt) {
			// Identical retry of a live reservation: no-op.
			return &model.ReserveStockResponse{
				ReservationID: existing.ReservationID,
				ExpiresAt:     existing.ExpiresAt,
			}, nil
		}
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationExpired, existing.ReservationID)
	case constant.ReservationStatusCommitted:
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, existing.ReservationID)
	case constant.ReservationStatusReleased, constant.ReservationStatusExpired, constant.ReservationStatusReleasing:
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, existing.ReservationID)
	default:
		// pending: a concurrent attempt with this id is still in flight
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, existing.ReservationID)
	}
}

// compensateReserve returns the holds taken on the first n lines of the call
// and marks the reservation expired so the trace stays auditable.
func (s *stockAppImpl) compensateReserve(ctx context.Context, q sqlx.ExtContext, req *model.ReserveStockRequest, n int) {
	for _, it := range req.Items[:n] {
		if _, err := s.stockRepo.UnreserveEntry(ctx, q, it.ProductID, it.VariantSKU, req.BranchID, it.Quantity); err != nil {
			logger.Error("[Reserve] compensation failed",
				zap.String("reservation_id", req.ReservationID),
				zap.Uint64("product_id", it.ProductID),
				zap.String("error", err.Error()))
		}
	}
	if _, err := s.reservationRepo.MarkTerminated(ctx, q, req.ReservationID, constant.ReservationStatusExpired, time.Now().Add(s.config.Reservation.Retention)); err != nil {
		logger.Error("[Reserve] mark expired failed",
			zap.String("reservation_id", req.ReservationID),
			zap.String("error", err.Error()))
	}
}

// CommitReservation converts an active unexpired hold into a final decrement,
// appending one audit movement per line. A stale reservation is auto-released
// and reported expired instead of touching stock.
func (s *stockAppImpl) CommitReservation(ctx context.Context, reservationID, reference, actorID string) (*model.CommitReservationResponse, error) {
	if reservationID == "" {
		return nil, cerrors.SetCustomError(constant.ErrInvalidRequest)
	}

	res, err := s.reservationRepo.GetReservation(ctx, s.db, reservationID)
	if err != nil {
		logger.Error("[CommitReservation] get reservation failed", zap.String("error", err.Error()))
		return nil, cerrors.SetCustomError(constant.ErrInternal)
	}
	if res == nil {
		return nil, cerrors.SetCustomError(constant.ErrNotFound)
	}
	if res.Status != constant.ReservationStatusActive {
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, reservationID)
	}
	if time.Now().After(res.ExpiresAt) {
		if _, err := s.Release(ctx, reservationID, constant.ReservationStatusExpired); err != nil {
			logger.Error("[CommitReservation] auto release failed",
				zap.String("reservation_id", reservationID),
				zap.String("error", err.Error()))
		}
		return nil, cerrors.SetCustomErrorWithDetails(constant.ErrReservationExpired, reservationID)
	}

	decremented := make([]model.MovementEntry, 0, len(res.Items))
	err = s.run(ctx, func(q sqlx.ExtContext) error {
		applied := make([]model.ReservationItem, 0, len(res.Items))
		for _, it := range res.Items {
			ok, err := s.stockRepo.CommitEntry(ctx, q, it.ProductID, it.VariantSKU, res.BranchID, it.Quantity)
			if err != nil {
				logger.Error("[CommitReservation] commit entry failed", zap.String("error", err.Error()))
				s.compensateCommit(ctx, q, res.BranchID, reference, actorID, applied)
				return cerrors.SetCustomError(constant.ErrInternal)
			}
			if !ok {
				s.compensateCommit(ctx, q, res.BranchID, reference, actorID, applied)
				return cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, reservationID)
			}
			applied = append(applied, it)

			balance, err := s.stockRepo.GetQuantity(ctx, q, it.ProductID, it.VariantSKU, res.BranchID)
			if err != nil {
				logger.Error("[CommitReservation] balance read-back failed", zap.String("error", err.Error()))
				s.compensateCommit(ctx, q, res.BranchID, reference, actorID, applied)
				return cerrors.SetCustomError(constant.ErrInternal)
			}
			if err := s.stockRepo.InsertMovement(ctx, q, &model.StockMovement{
				ProductID:    it.ProductID,
				VariantSKU:   it.VariantSKU,
				BranchID:     res.BranchID,
				Type:         string(constant.MovementTypeSale),
				Quantity:     -it.Quantity,
				BalanceAfter: balance,
				Reference:    reference,
				ActorID:      actorID,
			}); err != nil {
				logger.Error("[CommitReservation] insert movement failed", zap.String("error", err.Error()))
				s.compensateCommit(ctx, q, res.BranchID, reference, actorID, applied)
				return cerrors.SetCustomError(constant.ErrInternal)
			}
			decremented = append(decremented, model.MovementEntry{
				ProductID:    it.ProductID,
				VariantSKU:   it.VariantSKU,
				Quantity:     it.Quantity,
				BalanceAfter: balance,
			})
		}

		committed, err := s.reservationRepo.MarkCommitted(ctx, q, reservationID)
		if err != nil || !committed {
			if err != nil {
				logger.Error("[CommitReservation] mark committed failed", zap.String("error", err.Error()))
			}
			s.compensateCommit(ctx, q, res.BranchID, reference, actorID, applied)
			return cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, reservationID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]model.StockItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, model.StockItem{ProductID: it.ProductID, VariantSKU: it.VariantSKU, Quantity: it.Quantity})
	}
	s.fireStockEvent(ctx, "committed", reservationID, res.BranchID, res.OrderID, items)

	return &model.CommitReservationResponse{
		ReservationID:    reservationID,
		DecrementedItems: decremented,
	}, nil
}

// compensateCommit re-credits lines already decremented in this call. Inside
// a transaction the rollback discards the sale movements too; on the fallback
// path they have already been written, so each re-credit appends an
// adjustment counter-entry to keep the append-only trail balanced.
func (s *stockAppImpl) compensateCommit(ctx context.Context, q sqlx.ExtContext, branchID uint64, reference, actorID string, applied []model.ReservationItem) {
	_, inTx := q.(*sqlx.Tx)
	for _, it := range applied {
		if err := s.stockRepo.RecreditEntry(ctx, q, it.ProductID, it.VariantSKU, branchID, it.Quantity); err != nil {
			logger.Error("[CommitReservation] compensation failed",
				zap.Uint64("product_id", it.ProductID),
				zap.String("error", err.Error()))
			continue
		}
		if inTx {
			continue
		}

		balance, err := s.stockRepo.GetQuantity(ctx, q, it.ProductID, it.VariantSKU, branchID)
		if err != nil {
			logger.Error("[CommitReservation] compensation balance read-back failed",
				zap.Uint64("product_id", it.ProductID),
				zap.String("error", err.Error()))
			continue
		}
		if err := s.stockRepo.InsertMovement(ctx, q, &model.StockMovement{
			ProductID:    it.ProductID,
			VariantSKU:   it.VariantSKU,
			BranchID:     branchID,
			Type:         string(constant.MovementTypeAdjustment),
			Quantity:     it.Quantity,
			BalanceAfter: balance,
			Reference:    reference,
			ActorID:      actorID,
		}); err != nil {
			logger.Error("[CommitReservation] compensation movement failed",
				zap.Uint64("product_id", it.ProductID),
				zap.String("error", err.Error()))
		}
	}
}

// Release returns a reservation's holds to the available pool and marks it with
// the given terminal status. Idempotent: an already released/expired reservation
// is a no-op success; a committed one is rejected, committed holds are final.
func (s *stockAppImpl) Release(ctx context.Context, reservationID string, status constant.ReservationStatus) (bool, error) {
	if status != constant.ReservationStatusReleased && status != constant.ReservationStatusExpired {
		return false, cerrors.SetCustomError(constant.ErrInvalidRequest)
	}

	res, err := s.reservationRepo.GetReservation(ctx, s.db, reservationID)
	if err != nil {
		logger.Error("[Release] get reservation failed", zap.String("error", err.Error()))
		return false, cerrors.SetCustomError(constant.ErrInternal)
	}
	if res == nil {
		return false, cerrors.SetCustomError(constant.ErrNotFound)
	}
	switch res.Status {
	case constant.ReservationStatusReleased, constant.ReservationStatusExpired:
		return true, nil
	case constant.ReservationStatusCommitted:
		return false, cerrors.SetCustomErrorWithDetails(constant.ErrReservationConflict, reservationID)
	}

	holdsWereTaken := res.Status != constant.ReservationStatusPending
	won := false
	err = s.run(ctx, func(q sqlx.ExtContext) error {
		// The guarded status flip is the claim: exactly one concurrent
		// releaser wins it, so the holds below are returned once.
		terminated, err := s.reservationRepo.MarkTerminated(ctx, q, reservationID, status, time.Now().Add(s.config.Reservation.Retention))
		if err != nil {
			logger.Error("[Release] mark terminated failed", zap.String("error", err.Error()))
			return cerrors.SetCustomError(constant.ErrInternal)
		}
		if !terminated {
			// Lost the race; the winner handles the holds and the event.
			return nil
		}
		won = true
		if !holdsWereTaken {
			return nil
		}

		for _, it := range res.Items {
			ok, err := s.stockRepo.UnreserveEntry(ctx, q, it.ProductID, it.VariantSKU, res.BranchID, it.Quantity)
			if err != nil {
				logger.Error("[Release] unreserve entry failed", zap.String("error", err.Error()))
				return cerrors.SetCustomError(constant.ErrInternal)
			}
			if !ok {
				// Hold already returned for this line; converge silently.
				logger.Warn("[Release] hold already returned",
					zap.String("reservation_id", reservationID),
					zap.Uint64("product_id", it.ProductID))
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if !won {
		return true, nil
	}

	items := make([]model.StockItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, model.StockItem{ProductID: it.ProductID, VariantSKU: it.VariantSKU, Quantity: it.Quantity})
	}
	s.fireStockEvent(ctx, string(status), reservationID, res.BranchID, res.OrderID, items)

	return true, nil
}

// fireStockEvent runs the post-mutation hook: cache invalidation plus one
// event message per committed mutation set. Best effort, never fails the
// primary path.
func (s *stockAppImpl) fireStockEvent(ctx context.Context, event, reservationID string, branchID, orderID uint64, items []model.StockItem) {
	for _, it := range items {
		if err := s.redisRepo.InvalidateAvailability(ctx, branchID, it.ProductID, it.VariantSKU); err != nil {
			logger.Error("[fireStockEvent] cache invalidation failed",
				zap.Uint64("product_id", it.ProductID),
				zap.String("error", err.Error()))
		}
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStockEvent(rabbitmq.StockEventMessage{
		Event:         event,
		ReservationID: reservationID,
		BranchID:      branchID,
		OrderID:       orderID,
		OccurredAt:    time.Now(),
	}); err != nil {
		logger.Error("[fireStockEvent] publish failed", zap.String("error", err.Error()))
	}
}
