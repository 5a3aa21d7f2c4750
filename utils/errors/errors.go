package errors

import "github.com/muhammadheryan/stock-coordinator/constant"

type CustomError struct {
	errType constant.ErrorType
	details interface{}
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

// Details returns the typed payload attached to the error (e.g. the per-item
// shortfall list of an insufficient-stock error), or nil.
func (c CustomError) Details() interface{} {
	return c.details
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorWithDetails(errorType constant.ErrorType, details interface{}) CustomError {
	return CustomError{
		errType: errorType,
		details: details,
	}
}
