package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	idempotencyapp "github.com/muhammadheryan/stock-coordinator/application/idempotency"
	reaperapp "github.com/muhammadheryan/stock-coordinator/application/reaper"
	stockapp "github.com/muhammadheryan/stock-coordinator/application/stock"
	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/model"
	utilsContext "github.com/muhammadheryan/stock-coordinator/utils/context"
	"github.com/muhammadheryan/stock-coordinator/utils/errors"
	validatorx "github.com/muhammadheryan/stock-coordinator/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

// IdempotencyKeyHeader carries the caller-supplied deduplication token.
const IdempotencyKeyHeader = "X-Idempotency-Key"

type RestHandler struct {
	StockApp       stockapp.StockApp
	IdempotencyApp idempotencyapp.IdempotencyApp
	ReaperApp      reaperapp.ReaperApp
}

func NewTransport(StockApp stockapp.StockApp, IdempotencyApp idempotencyapp.IdempotencyApp, ReaperApp reaperapp.ReaperApp, jwtSecret, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		StockApp:       StockApp,
		IdempotencyApp: IdempotencyApp,
		ReaperApp:      ReaperApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Stock routes
	mux.HandleFunc("/v1/stock/validate", rh.Validate).Methods(http.MethodPost)
	mux.HandleFunc("/v1/stock/reserve", rh.Reserve).Methods(http.MethodPost)
	mux.HandleFunc("/v1/stock/reservation/{id}/commit", rh.Commit).Methods(http.MethodPost)
	mux.HandleFunc("/v1/stock/reservation/{id}/release", rh.Release).Methods(http.MethodPost)

	// Internal routes (API key, used by the expiration consumer)
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/v1/reaper/run", rh.ReaperRun).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(jwtSecret))

	return mux
}

// Validate handler
// @Summary Validate stock availability
// @Description Check available quantity per line item without taking holds
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.ValidateStockRequest true "Validate Request"
// @Success 200 {object} model.ValidateStockResponse
// @Failure 400 {object} errors.CustomError
// @Router /v1/stock/validate [post]
func (s *RestHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ValidateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.Validate(ctx, &req, false)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Reserve handler
// @Summary Reserve stock
// @Description Place a temporary hold on inventory for a checkout in progress
// @Tags Stock
// @Accept json
// @Produce json
// @Param X-Idempotency-Key header string false "Idempotency Key"
// @Param request body model.ReserveStockRequest true "Reserve Request"
// @Success 200 {object} model.ReserveStockResponse
// @Failure 409 {object} errors.CustomError
// @Router /v1/stock/reserve [post]
func (s *RestHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReserveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if userID, ok := utilsContext.GetUserID(ctx); ok && req.UserID == 0 {
		req.UserID = userID
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	result, err := s.IdempotencyApp.Execute(ctx, key, &req, func(opCtx context.Context) (interface{}, error) {
		return s.StockApp.Reserve(opCtx, &req)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, json.RawMessage(result))
}

// Commit handler
// @Summary Commit a reservation
// @Description Convert a hold into a final stock decrement with audit movements
// @Tags Stock
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body model.CommitReservationRequest true "Commit Request"
// @Success 200 {object} model.CommitReservationResponse
// @Failure 409 {object} errors.CustomError
// @Router /v1/stock/reservation/{id}/commit [post]
func (s *RestHandler) Commit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reservationID := mux.Vars(r)["id"]

	var req model.CommitReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetActorID(ctx)

	res, err := s.StockApp.CommitReservation(ctx, reservationID, req.Reference, actorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Release handler
// @Summary Release a reservation
// @Description Return a reservation's holds to the available pool
// @Tags Stock
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]bool
// @Failure 409 {object} errors.CustomError
// @Router /v1/stock/reservation/{id}/release [post]
func (s *RestHandler) Release(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reservationID := mux.Vars(r)["id"]

	released, err := s.StockApp.Release(ctx, reservationID, constant.ReservationStatusReleased)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]bool{"released": released})
}

// ReaperRun handler triggers one reaper tick on demand.
func (s *RestHandler) ReaperRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	released, err := s.ReaperApp.RunOnce(ctx)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	writeSuccess(w, map[string]int{"released": released})
}
