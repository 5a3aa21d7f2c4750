package idempotency_test

import (
	"context"
	"testing"
	"time"

	appidem "github.com/muhammadheryan/stock-coordinator/application/idempotency"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	"github.com/muhammadheryan/stock-coordinator/constant"
	idemmocks "github.com/muhammadheryan/stock-coordinator/mocks/repository/idempotency"
	"github.com/muhammadheryan/stock-coordinator/model"
	idemrepo "github.com/muhammadheryan/stock-coordinator/repository/idempotency"
	cerr "github.com/muhammadheryan/stock-coordinator/utils/errors"
	"github.com/muhammadheryan/stock-coordinator/utils/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	BranchID uint64 `json:"branch_id"`
	Amount   int64  `json:"amount"`
}

var payload = testPayload{BranchID: 1, Amount: 42}

func payloadHash(t *testing.T) string {
	t.Helper()
	h, err := hash.Payload(payload)
	require.NoError(t, err)
	return h
}

func testConfig() *config.Config {
	return &config.Config{
		Idempotency: config.IdempotencyConfig{TTL: 24 * time.Hour},
	}
}

func TestIdempotencyApp_Check(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		mockCall func(t *testing.T, r *idemmocks.IdempotencyRepository)
		want     *model.CheckResult
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: fresh key claims the slot",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).Return(nil).Once()
			},
			want: &model.CheckResult{IsNew: true},
		},
		{
			name: "success: empty key bypasses the gate",
			key:  "",
			want: &model.CheckResult{IsNew: true},
		},
		{
			name: "success: completed record returns cached result",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      payloadHash(t),
					Status:    constant.IdempotencyStatusCompleted,
					ExpiresAt: time.Now().Add(time.Hour),
					Result:    []byte(`{"reservation_id":"rsv-1"}`),
				}, nil).Once()
			},
			want: &model.CheckResult{IsNew: false, Result: []byte(`{"reservation_id":"rsv-1"}`)},
		},
		{
			name: "success: failed record resets to pending",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      payloadHash(t),
					Status:    constant.IdempotencyStatusFailed,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil).Once()
				r.On("ResetPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything, mock.Anything).
					Return(true, nil).Once()
			},
			want: &model.CheckResult{IsNew: true},
		},
		{
			name: "success: expired record is treated as absent",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      "stale-hash",
					Status:    constant.IdempotencyStatusCompleted,
					ExpiresAt: time.Now().Add(-time.Minute),
				}, nil).Once()
				r.On("ResetPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything, mock.Anything).
					Return(true, nil).Once()
			},
			want: &model.CheckResult{IsNew: true},
		},
		{
			name: "success: record purged between insert and read-back",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(nil, nil).Once()
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(nil).Once()
			},
			want: &model.CheckResult{IsNew: true},
		},
		{
			name: "error: same key different payload",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      "some-other-hash",
					Status:    constant.IdempotencyStatusCompleted,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrDuplicatePayload,
		},
		{
			name: "error: concurrent duplicate still pending",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      payloadHash(t),
					Status:    constant.IdempotencyStatusPending,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrIdempotencyConflict,
		},
		{
			name: "error: reset lost the race",
			key:  "idem-1",
			mockCall: func(t *testing.T, r *idemmocks.IdempotencyRepository) {
				r.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
					Return(idemrepo.ErrDuplicateKey).Once()
				r.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
					Key:       "idem-1",
					Hash:      payloadHash(t),
					Status:    constant.IdempotencyStatusFailed,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil).Once()
				r.On("ResetPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything, mock.Anything).
					Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrIdempotencyConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idemRepo := idemmocks.NewIdempotencyRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(t, idemRepo)
			}

			app := appidem.NewIdempotencyApp(testConfig(), nil, idemRepo)
			got, err := app.Check(context.Background(), tt.key, payload)

			if tt.wantErr {
				require.Error(t, err)
				ce, ok := err.(cerr.CustomError)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, ce.ErrorType())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdempotencyApp_Execute(t *testing.T) {
	t.Run("success: operation runs once and result is cached", func(t *testing.T) {
		idemRepo := idemmocks.NewIdempotencyRepository(t)
		idemRepo.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).Return(nil).Once()
		idemRepo.On("MarkCompleted", mock.Anything, mock.Anything, "idem-1", []byte(`{"reservation_id":"rsv-1"}`)).Return(nil).Once()

		calls := 0
		app := appidem.NewIdempotencyApp(testConfig(), nil, idemRepo)
		got, err := app.Execute(context.Background(), "idem-1", payload, func(ctx context.Context) (interface{}, error) {
			calls++
			return map[string]string{"reservation_id": "rsv-1"}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.JSONEq(t, `{"reservation_id":"rsv-1"}`, string(got))
	})

	t.Run("success: cached result short-circuits the operation", func(t *testing.T) {
		idemRepo := idemmocks.NewIdempotencyRepository(t)
		idemRepo.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).
			Return(idemrepo.ErrDuplicateKey).Once()
		idemRepo.On("GetRecord", mock.Anything, mock.Anything, "idem-1").Return(&model.IdempotencyRecord{
			Key:       "idem-1",
			Hash:      payloadHash(t),
			Status:    constant.IdempotencyStatusCompleted,
			ExpiresAt: time.Now().Add(time.Hour),
			Result:    []byte(`{"reservation_id":"rsv-1"}`),
		}, nil).Once()

		app := appidem.NewIdempotencyApp(testConfig(), nil, idemRepo)
		got, err := app.Execute(context.Background(), "idem-1", payload, func(ctx context.Context) (interface{}, error) {
			t.Fatal("operation must not run for a cached key")
			return nil, nil
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"reservation_id":"rsv-1"}`, string(got))
	})

	t.Run("error: operation failure is recorded and propagated", func(t *testing.T) {
		idemRepo := idemmocks.NewIdempotencyRepository(t)
		idemRepo.On("InsertPending", mock.Anything, mock.Anything, "idem-1", payloadHash(t), mock.Anything).Return(nil).Once()
		idemRepo.On("MarkFailed", mock.Anything, mock.Anything, "idem-1", mock.Anything).Return(nil).Once()

		opErr := cerr.SetCustomError(constant.ErrInsufficientStock)
		app := appidem.NewIdempotencyApp(testConfig(), nil, idemRepo)
		_, err := app.Execute(context.Background(), "idem-1", payload, func(ctx context.Context) (interface{}, error) {
			return nil, opErr
		})

		require.Error(t, err)
		assert.Equal(t, opErr, err)
	})

	t.Run("success: empty key runs the operation without recording", func(t *testing.T) {
		idemRepo := idemmocks.NewIdempotencyRepository(t)

		app := appidem.NewIdempotencyApp(testConfig(), nil, idemRepo)
		got, err := app.Execute(context.Background(), "", payload, func(ctx context.Context) (interface{}, error) {
			return map[string]bool{"ok": true}, nil
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(got))
	})
}
