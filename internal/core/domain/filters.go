package domain

// LeadFilter narrows a lead query. Zero values mean "no restriction".
type LeadFilter struct {
	CustomerID *uint
	AssignedTo *uint
	Statuses   []Status
	Offset     int
	Limit      int
}

// UserFilter narrows a user query.
type UserFilter struct {
	Role     *Role
	IsActive *bool
	Offset   int
	Limit    int
}

// CommissionFilter narrows a commission query.
type CommissionFilter struct {
	Status  *CommissionStatus
	AgentID *uint
	Offset  int
	Limit   int
}
