package service

import (
	"errors"
	"fmt"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/repository"
)

// 业务哨兵错误，供 handler 层 errors.Is 映射
var (
	ErrParcelNotFound            = errors.New("parcel not found")
	ErrParcelStateConflict       = errors.New("parcel state conflict")
	ErrParcelStateStale          = errors.New("parcel state modified concurrently")
	ErrParcelTypeInvalid         = errors.New("parcel type invalid")
	ErrParcelStatusInvalid       = errors.New("parcel status invalid")
	ErrParcelInputInvalid        = errors.New("parcel input invalid")
	ErrUserNotFound              = errors.New("user not found")
	ErrUserStatusConflict        = errors.New("user status conflict")
	ErrUserStatusInvalid         = errors.New("user status invalid")
	ErrRoleNotAllowed            = errors.New("role not allowed")
	ErrAccountBanned             = errors.New("account banned")
	ErrAccountBlocked            = errors.New("account blocked")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrTrackingNotFound          = errors.New("tracking id not found")
	ErrContactMessageNotFound    = errors.New("contact message not found")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// notFoundError 包装 404 业务错误
func notFoundError(message string, sentinel error) error {
	return response.WrapError(response.CodeNotFound, message, sentinel)
}

// stateConflictError 包装携带当前状态的 400 业务错误
func stateConflictError(format string, args ...interface{}) error {
	return response.WrapError(response.CodeBadRequest, fmt.Sprintf(format, args...), ErrParcelStateConflict)
}

// staleStateError 并发冲突统一提示
func staleStateError() error {
	return response.WrapError(response.CodeBadRequest, "Parcel was modified by another request. Please retry.", ErrParcelStateStale)
}

func isStaleState(err error) bool {
	return errors.Is(err, repository.ErrStaleState)
}
