package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInsufficientStock
	ErrReservationConflict
	ErrReservationExpired
	ErrIdempotencyConflict
	ErrDuplicatePayload
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrInsufficientStock:   "insufficient available stock",
	ErrReservationConflict: "reservation conflict",
	ErrReservationExpired:  "reservation expired",
	ErrIdempotencyConflict: "duplicate request still in flight",
	ErrDuplicatePayload:    "idempotency key reused with different payload",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusBadRequest,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrInsufficientStock:   http.StatusConflict,
	ErrReservationConflict: http.StatusConflict,
	ErrReservationExpired:  http.StatusConflict,
	ErrIdempotencyConflict: http.StatusConflict,
	ErrDuplicatePayload:    http.StatusUnprocessableEntity,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrInsufficientStock:   "0005",
	ErrReservationConflict: "0006",
	ErrReservationExpired:  "0007",
	ErrIdempotencyConflict: "0008",
	ErrDuplicatePayload:    "0009",
}
