package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleCustomer            Role = "CUSTOMER"
	RoleSalesAgent          Role = "SALES_AGENT"
	RoleRelationshipManager Role = "RELATIONSHIP_MANAGER"
	RoleCreditAnalyst       Role = "CREDIT_ANALYST"
	RoleOperations          Role = "OPERATIONS"
	RoleAdmin               Role = "ADMIN"
)

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	return []Role{
		RoleCustomer,
		RoleSalesAgent,
		RoleRelationshipManager,
		RoleCreditAnalyst,
		RoleOperations,
		RoleAdmin,
	}
}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// IsStaff reports whether the role belongs to an employee rather than a customer.
func (r Role) IsStaff() bool {
	switch r {
	case RoleSalesAgent, RoleRelationshipManager, RoleCreditAnalyst, RoleOperations, RoleAdmin:
		return true
	default:
		return false
	}
}

// Status is the lifecycle status of a Lead.
type Status string

const (
	StatusNew            Status = "NEW"
	StatusAssigned       Status = "ASSIGNED"
	StatusInReview       Status = "IN_REVIEW"
	StatusDocsPending    Status = "DOCS_PENDING"
	StatusDocsVerified   Status = "DOCS_VERIFIED"
	StatusCreditApproved Status = "CREDIT_APPROVED"
	StatusSanctioned     Status = "SANCTIONED"
	StatusDisbursed      Status = "DISBURSED"
	StatusRejected       Status = "REJECTED"
)

// AllStatuses returns every status in pipeline order.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusAssigned,
		StatusInReview,
		StatusDocsPending,
		StatusDocsVerified,
		StatusCreditApproved,
		StatusSanctioned,
		StatusDisbursed,
		StatusRejected,
	}
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

// IsValid reports whether s is a member of the status enum.
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusDisbursed || s == StatusRejected
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Email     string
	Name      string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lead is a submitted loan application.
type Lead struct {
	ID            uint
	CustomerID    uint
	Name          string
	Phone         string
	Email         string
	PAN           string
	Aadhar        string
	Income        float64
	PropertyValue float64
	LoanAmount    float64
	Tenure        int
	Status        Status
	AssignedTo    *uint
	RMID          *uint
	Version       uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BankOffer is a read-only catalog entry of a lending partner.
type BankOffer struct {
	ID            uint
	BankName      string
	ROI           float64
	ProcessingFee float64
	MaxTenure     int
	MinIncome     float64
}

// DocumentStatus is the verification state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentVerified DocumentStatus = "VERIFIED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// ParseDocumentStatus converts a raw string into a DocumentStatus.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case DocumentPending, DocumentVerified, DocumentRejected:
		return DocumentStatus(s), nil
	}
	return "", ErrInvalidInput
}

// LeadDocument is a supporting document attached to a lead.
type LeadDocument struct {
	ID        uint
	LeadID    uint
	Type      string
	URL       string
	Status    DocumentStatus
	CheckedBy *uint
	CheckedAt *time.Time
	Remark    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeadTransition is one entry of a lead's status history.
type LeadTransition struct {
	ID          uint
	LeadID      uint
	FromStatus  Status
	ToStatus    Status
	PerformedBy uint
	Role        Role
	Remark      string
	IPAddress   string
	CreatedAt   time.Time
}

// CommissionStatus is the payout state of a commission.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
)

// Commission is the payout owed to an agent for a disbursed lead.
type Commission struct {
	ID        uint
	LeadID    uint
	AgentID   uint
	Amount    float64
	Status    CommissionStatus
	PaidAt    *time.Time
	CreatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
