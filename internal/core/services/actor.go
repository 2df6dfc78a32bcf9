package services

import "gcbp-mortgage/internal/core/domain"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   domain.Role
	IP     string
}
