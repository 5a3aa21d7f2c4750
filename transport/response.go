package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/utils/errors"
)

type baseResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(baseResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	ce, ok := err.(errors.CustomError)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(baseResponse{
			Code:    constant.ErrorTypeCode[constant.ErrInternal],
			Message: constant.ErrorTypeMessage[constant.ErrInternal],
		})
		return
	}

	w.WriteHeader(ce.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(baseResponse{
		Code:    ce.ErrorCode(),
		Message: ce.Error(),
		Details: ce.Details(),
	})
}
