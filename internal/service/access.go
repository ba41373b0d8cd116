package service

import (
	"errors"

	"z2b/internal/domain"
)

const (
	MsgSuspended = "Your account has been suspended. Please contact support for assistance."
	MsgDeleted   = "This account has been deactivated. Please contact support if you believe this is an error."
	MsgUnknown   = "An error occurred. Please try again."
)

// AccessResult is the outcome of a member status check.
type AccessResult struct {
	HasAccess bool   `json:"has_access"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// CheckMemberAccess maps a profile status to platform access. Any status other than
// active, suspended or deleted is treated as an error state.
func CheckMemberAccess(status string) AccessResult {
	switch status {
	case domain.StatusActive:
		return AccessResult{HasAccess: true, Status: domain.StatusActive}
	case domain.StatusSuspended:
		return AccessResult{HasAccess: false, Status: domain.StatusSuspended, Message: MsgSuspended}
	case domain.StatusDeleted:
		return AccessResult{HasAccess: false, Status: domain.StatusDeleted, Message: MsgDeleted}
	default:
		return AccessResult{HasAccess: false, Status: "error", Message: MsgUnknown}
	}
}

var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError carries the access result that caused a denial. It matches ErrAccessDenied.
type AccessDeniedError struct {
	Result AccessResult
}

func (e *AccessDeniedError) Error() string { return e.Result.Message }

func (e *AccessDeniedError) Is(target error) bool { return target == ErrAccessDenied }
