package reaper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appreaper "github.com/muhammadheryan/stock-coordinator/application/reaper"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	"github.com/muhammadheryan/stock-coordinator/constant"
	stockappmocks "github.com/muhammadheryan/stock-coordinator/mocks/application/stock"
	idemmocks "github.com/muhammadheryan/stock-coordinator/mocks/repository/idempotency"
	reservationmocks "github.com/muhammadheryan/stock-coordinator/mocks/repository/reservation"
	"github.com/muhammadheryan/stock-coordinator/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig(batchSize int) *config.Config {
	return &config.Config{
		Reaper: config.ReaperConfig{
			Interval:   time.Minute,
			BatchSize:  batchSize,
			ClaimLease: 5 * time.Minute,
		},
	}
}

func TestReaperApp_RunOnce(t *testing.T) {
	type fields struct {
		reservationRepo *reservationmocks.ReservationRepository
		idemRepo        *idemmocks.IdempotencyRepository
		stockApp        *stockappmocks.StockApp
	}

	tests := []struct {
		name      string
		batchSize int
		mockCall  func(f fields)
		want      int
		wantErr   bool
	}{
		{
			name:      "success: claims and releases until none remain",
			batchSize: 100,
			mockCall: func(f fields) {
				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&model.StockReservation{ReservationID: "rsv-1", BranchID: 1}, nil).Once()
				f.stockApp.On("Release", mock.Anything, "rsv-1", constant.ReservationStatusExpired).Return(true, nil).Once()

				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&model.StockReservation{ReservationID: "rsv-2", BranchID: 1}, nil).Once()
				f.stockApp.On("Release", mock.Anything, "rsv-2", constant.ReservationStatusExpired).Return(true, nil).Once()

				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, nil).Once()

				f.reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()
				f.idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()
			},
			want: 2,
		},
		{
			name:      "success: batch cap bounds the tick",
			batchSize: 1,
			mockCall: func(f fields) {
				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&model.StockReservation{ReservationID: "rsv-1", BranchID: 1}, nil).Once()
				f.stockApp.On("Release", mock.Anything, "rsv-1", constant.ReservationStatusExpired).Return(true, nil).Once()

				f.reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 1).Return(int64(0), nil).Once()
				f.idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 1).Return(int64(0), nil).Once()
			},
			want: 1,
		},
		{
			name:      "success: nothing expired still sweeps retention",
			batchSize: 100,
			mockCall: func(f fields) {
				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, nil).Once()

				f.reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(3), nil).Once()
				f.idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(7), nil).Once()
			},
			want: 0,
		},
		{
			name:      "success: release failure skips the claim and keeps going",
			batchSize: 100,
			mockCall: func(f fields) {
				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&model.StockReservation{ReservationID: "rsv-1", BranchID: 1}, nil).Once()
				f.stockApp.On("Release", mock.Anything, "rsv-1", constant.ReservationStatusExpired).
					Return(false, errors.New("db gone away")).Once()

				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&model.StockReservation{ReservationID: "rsv-2", BranchID: 1}, nil).Once()
				f.stockApp.On("Release", mock.Anything, "rsv-2", constant.ReservationStatusExpired).Return(true, nil).Once()

				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, nil).Once()

				f.reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()
				f.idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()
			},
			want: 1,
		},
		{
			name:      "error: claim failure aborts the tick",
			batchSize: 100,
			mockCall: func(f fields) {
				f.reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("db gone away")).Once()
			},
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				reservationRepo: reservationmocks.NewReservationRepository(t),
				idemRepo:        idemmocks.NewIdempotencyRepository(t),
				stockApp:        stockappmocks.NewStockApp(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			app := appreaper.NewReaperApp(testConfig(tt.batchSize), nil, f.reservationRepo, f.idemRepo, f.stockApp)
			got, err := app.RunOnce(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReaperApp_RunOnce_ReclaimsStaleClaims(t *testing.T) {
	reservationRepo := reservationmocks.NewReservationRepository(t)
	idemRepo := idemmocks.NewIdempotencyRepository(t)
	stockApp := stockappmocks.NewStockApp(t)

	// Claimed by a worker that died between claim and release: still in
	// releasing, lease long past. The claim cutoff handed to the store must
	// trail now by the configured lease so the row matches again.
	stale := &model.StockReservation{
		ReservationID: "rsv-stale",
		BranchID:      1,
		Status:        constant.ReservationStatusReleasing,
	}
	reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.MatchedBy(func(staleBefore time.Time) bool {
			lag := time.Since(staleBefore)
			return lag >= 5*time.Minute && lag < 6*time.Minute
		})).Return(stale, nil).Once()
	stockApp.On("Release", mock.Anything, "rsv-stale", constant.ReservationStatusExpired).Return(true, nil).Once()

	reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()
	idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 100).Return(int64(0), nil).Once()

	app := appreaper.NewReaperApp(testConfig(100), nil, reservationRepo, idemRepo, stockApp)
	got, err := app.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestReaperApp_RunOnce_DistinctClaimTokens(t *testing.T) {
	reservationRepo := reservationmocks.NewReservationRepository(t)
	idemRepo := idemmocks.NewIdempotencyRepository(t)
	stockApp := stockappmocks.NewStockApp(t)

	tokens := make(map[string]bool)
	reservationRepo.On("ClaimExpired", mock.Anything, mock.Anything, mock.MatchedBy(func(token string) bool {
		tokens[token] = true
		return true
	}), mock.Anything, mock.Anything).Return(&model.StockReservation{ReservationID: "rsv-1", BranchID: 1}, nil).Twice()
	stockApp.On("Release", mock.Anything, "rsv-1", constant.ReservationStatusExpired).Return(true, nil).Twice()

	reservationRepo.On("DeleteCleanedUp", mock.Anything, mock.Anything, mock.Anything, 2).Return(int64(0), nil).Once()
	idemRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything, 2).Return(int64(0), nil).Once()

	app := appreaper.NewReaperApp(testConfig(2), nil, reservationRepo, idemRepo, stockApp)
	got, err := app.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Len(t, tokens, 2)
}
