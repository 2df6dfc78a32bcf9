package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownStatus      = errors.New("unknown lead status")
)

// Lead errors
var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadConflict      = errors.New("lead was modified concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFieldNotEditable  = errors.New("field is not editable")
)

// Commission errors
var (
	ErrCommissionNotFound = errors.New("commission not found")
	ErrCommissionPaid     = errors.New("commission already paid")
)

// TransitionReason says why a transition was refused. It is for logs only,
// callers see ErrInvalidTransition regardless.
type TransitionReason string

const (
	ReasonTerminal       TransitionReason = "terminal"
	ReasonRoleNotAllowed TransitionReason = "role_not_allowed"
	ReasonIllegalTarget  TransitionReason = "illegal_target"
	ReasonUnknownStatus  TransitionReason = "unknown_status"
)

// TransitionError is returned when a (from, to, role) triple is not in the
// transition table.
type TransitionError struct {
	From   Status
	To     Status
	Role   Role
	Reason TransitionReason
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s for role %s (%s)", e.From, e.To, e.Role, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidTransition) hold for every TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
