package domain

import "time"

// transitionTable lists, per source status, the targets reachable from it and
// the roles allowed to make each move. Rejection is handled separately because
// it is reachable from every non-terminal status.
var transitionTable = map[Status]map[Status][]Role{
	StatusNew: {
		StatusAssigned: {RoleSalesAgent, RoleAdmin},
	},
	StatusAssigned: {
		StatusInReview: {RoleSalesAgent, RoleAdmin},
	},
	StatusInReview: {
		StatusCreditApproved: {RoleCreditAnalyst, RoleAdmin},
	},
	StatusDocsVerified: {
		StatusCreditApproved: {RoleCreditAnalyst, RoleAdmin},
	},
	StatusCreditApproved: {
		StatusSanctioned: {RoleSalesAgent, RoleAdmin},
	},
	StatusSanctioned: {
		StatusDisbursed: {RoleOperations, RoleAdmin},
	},
}

var rejectRoles = []Role{RoleSalesAgent, RoleCreditAnalyst, RoleAdmin}

// Lifecycle decides and applies lead status transitions.
type Lifecycle struct {
	now func() time.Time
}

// NewLifecycle creates a lifecycle that stamps updates with now.
func NewLifecycle(now func() time.Time) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{now: now}
}

// DefaultLifecycle uses the wall clock.
var DefaultLifecycle = NewLifecycle(time.Now)

// CanTransition reports whether role may move a lead from one status to another.
func CanTransition(from, to Status, role Role) bool {
	return checkTransition(from, to, role) == nil
}

// AllowedTargets returns the statuses role may move a lead to from the given
// status, in pipeline order.
func AllowedTargets(from Status, role Role) []Status {
	targets := []Status{}
	for _, to := range AllStatuses() {
		if CanTransition(from, to, role) {
			targets = append(targets, to)
		}
	}
	return targets
}

// ApplyTransition returns a copy of lead moved to the requested status. On
// failure the returned error matches ErrInvalidTransition and lead is returned
// unchanged.
//
// The lifecycle does not serialize writers. Callers persisting the result
// must do so atomically per lead (see LeadRepository.Save).
func (l *Lifecycle) ApplyTransition(lead Lead, to Status, role Role) (Lead, error) {
	if err := checkTransition(lead.Status, to, role); err != nil {
		return lead, err
	}

	lead.Status = to
	lead.UpdatedAt = advance(lead.UpdatedAt, l.now())
	return lead, nil
}

// ApplyTransition applies a transition using DefaultLifecycle.
func ApplyTransition(lead Lead, to Status, role Role) (Lead, error) {
	return DefaultLifecycle.ApplyTransition(lead, to, role)
}

func checkTransition(from, to Status, role Role) *TransitionError {
	fail := func(reason TransitionReason) *TransitionError {
		return &TransitionError{From: from, To: to, Role: role, Reason: reason}
	}

	if !from.IsValid() || !to.IsValid() {
		return fail(ReasonUnknownStatus)
	}
	if from.IsTerminal() {
		return fail(ReasonTerminal)
	}

	var allowed []Role
	if to == StatusRejected {
		allowed = rejectRoles
	} else if roles, ok := transitionTable[from][to]; ok {
		allowed = roles
	} else {
		return fail(ReasonIllegalTarget)
	}

	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return fail(ReasonRoleNotAllowed)
}

// advance returns now, or prev plus one millisecond when the clock has not
// moved past prev, so updated_at strictly increases on every change.
func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}
