package models

import (
	"time"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:30;not null;index;default:'CUSTOMER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Password:  u.Password,
		Role:      domain.Role(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Password:  u.Password,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) ToDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        rt.ID,
		UserID:    rt.UserID,
		TokenHash: rt.TokenHash,
		ExpiresAt: rt.ExpiresAt,
		CreatedAt: rt.CreatedAt,
		RevokedAt: rt.RevokedAt,
	}
}

// ============================================================
// Lead Tables
// ============================================================

// Lead represents leads table. Version is bumped on every write and
// checked on update.
type Lead struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Email         string    `gorm:"size:100" json:"email"`
	PAN           string    `gorm:"column:pan;size:20" json:"pan"`
	Aadhar        string    `gorm:"size:20" json:"aadhar"`
	Income        float64   `gorm:"type:decimal(15,2);not null" json:"income"`
	PropertyValue float64   `gorm:"type:decimal(15,2)" json:"property_value"`
	LoanAmount    float64   `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	Tenure        int       `gorm:"not null" json:"tenure"`
	Status        string    `gorm:"size:30;not null;index;default:'NEW'" json:"status"`
	AssignedTo    *uint     `gorm:"index" json:"assigned_to"`
	RMID          *uint     `gorm:"column:rm_id;index" json:"rm_id"`
	Version       uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;index" json:"updated_at"`

	// Relations
	Customer *User `gorm:"foreignKey:CustomerID" json:"-"`
	Agent    *User `gorm:"foreignKey:AssignedTo" json:"-"`
	RM       *User `gorm:"foreignKey:RMID" json:"-"`
}

func (Lead) TableName() string {
	return "leads"
}

func (l *Lead) ToDomain() *domain.Lead {
	return &domain.Lead{
		ID:            l.ID,
		CustomerID:    l.CustomerID,
		Name:          l.Name,
		Phone:         l.Phone,
		Email:         l.Email,
		PAN:           l.PAN,
		Aadhar:        l.Aadhar,
		Income:        l.Income,
		PropertyValue: l.PropertyValue,
		LoanAmount:    l.LoanAmount,
		Tenure:        l.Tenure,
		Status:        domain.Status(l.Status),
		AssignedTo:    l.AssignedTo,
		RMID:          l.RMID,
		Version:       l.Version,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func LeadFromDomain(l *domain.Lead) *Lead {
	return &Lead{
		ID:            l.ID,
		CustomerID:    l.CustomerID,
		Name:          l.Name,
		Phone:         l.Phone,
		Email:         l.Email,
		PAN:           l.PAN,
		Aadhar:        l.Aadhar,
		Income:        l.Income,
		PropertyValue: l.PropertyValue,
		LoanAmount:    l.LoanAmount,
		Tenure:        l.Tenure,
		Status:        string(l.Status),
		AssignedTo:    l.AssignedTo,
		RMID:          l.RMID,
		Version:       l.Version,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// BankOffer represents bank_offers table (catalog, read only at runtime)
type BankOffer struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BankName      string  `gorm:"size:100;not null" json:"bank_name"`
	ROI           float64 `gorm:"column:roi;type:decimal(5,2);not null" json:"roi"`
	ProcessingFee float64 `gorm:"type:decimal(5,2)" json:"processing_fee"`
	MaxTenure     int     `gorm:"not null" json:"max_tenure"`
	MinIncome     float64 `gorm:"type:decimal(15,2);not null" json:"min_income"`
}

func (BankOffer) TableName() string {
	return "bank_offers"
}

func (b *BankOffer) ToDomain() domain.BankOffer {
	return domain.BankOffer{
		ID:            b.ID,
		BankName:      b.BankName,
		ROI:           b.ROI,
		ProcessingFee: b.ProcessingFee,
		MaxTenure:     b.MaxTenure,
		MinIncome:     b.MinIncome,
	}
}

// LeadDocument represents lead_documents table
type LeadDocument struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	LeadID    uint       `gorm:"not null;index" json:"lead_id"`
	Type      string     `gorm:"size:50;not null" json:"type"`
	URL       string     `gorm:"size:500;not null" json:"url"`
	Status    string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CheckedBy *uint      `json:"checked_by"`
	CheckedAt *time.Time `json:"checked_at"`
	Remark    string     `gorm:"type:text" json:"remark"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Lead *Lead `gorm:"foreignKey:LeadID" json:"-"`
}

func (LeadDocument) TableName() string {
	return "lead_documents"
}

func (d *LeadDocument) ToDomain() *domain.LeadDocument {
	return &domain.LeadDocument{
		ID:        d.ID,
		LeadID:    d.LeadID,
		Type:      d.Type,
		URL:       d.URL,
		Status:    domain.DocumentStatus(d.Status),
		CheckedBy: d.CheckedBy,
		CheckedAt: d.CheckedAt,
		Remark:    d.Remark,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func LeadDocumentFromDomain(d *domain.LeadDocument) *LeadDocument {
	return &LeadDocument{
		ID:        d.ID,
		LeadID:    d.LeadID,
		Type:      d.Type,
		URL:       d.URL,
		Status:    string(d.Status),
		CheckedBy: d.CheckedBy,
		CheckedAt: d.CheckedAt,
		Remark:    d.Remark,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// LeadTransition is the status history of a lead (append only)
type LeadTransition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LeadID      uint      `gorm:"not null;index" json:"lead_id"`
	FromStatus  string    `gorm:"size:30;not null" json:"from_status"`
	ToStatus    string    `gorm:"size:30;not null" json:"to_status"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	Role        string    `gorm:"size:30;not null" json:"role"`
	Remark      string    `gorm:"type:text" json:"remark"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Lead      *Lead `gorm:"foreignKey:LeadID" json:"-"`
	Performer *User `gorm:"foreignKey:PerformedBy" json:"-"`
}

func (LeadTransition) TableName() string {
	return "lead_transitions"
}

func (t *LeadTransition) ToDomain() *domain.LeadTransition {
	return &domain.LeadTransition{
		ID:          t.ID,
		LeadID:      t.LeadID,
		FromStatus:  domain.Status(t.FromStatus),
		ToStatus:    domain.Status(t.ToStatus),
		PerformedBy: t.PerformedBy,
		Role:        domain.Role(t.Role),
		Remark:      t.Remark,
		IPAddress:   t.IPAddress,
		CreatedAt:   t.CreatedAt,
	}
}

func LeadTransitionFromDomain(t *domain.LeadTransition) *LeadTransition {
	return &LeadTransition{
		ID:          t.ID,
		LeadID:      t.LeadID,
		FromStatus:  string(t.FromStatus),
		ToStatus:    string(t.ToStatus),
		PerformedBy: t.PerformedBy,
		Role:        string(t.Role),
		Remark:      t.Remark,
		IPAddress:   t.IPAddress,
		CreatedAt:   t.CreatedAt,
	}
}

// Commission represents commissions table. One row per disbursed lead.
type Commission struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	LeadID    uint       `gorm:"not null;uniqueIndex" json:"lead_id"`
	AgentID   uint       `gorm:"not null;index" json:"agent_id"`
	Amount    float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status    string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Lead  *Lead `gorm:"foreignKey:LeadID" json:"-"`
	Agent *User `gorm:"foreignKey:AgentID" json:"-"`
}

func (Commission) TableName() string {
	return "commissions"
}

func (c *Commission) ToDomain() *domain.Commission {
	return &domain.Commission{
		ID:        c.ID,
		LeadID:    c.LeadID,
		AgentID:   c.AgentID,
		Amount:    c.Amount,
		Status:    domain.CommissionStatus(c.Status),
		PaidAt:    c.PaidAt,
		CreatedAt: c.CreatedAt,
	}
}

func CommissionFromDomain(c *domain.Commission) *Commission {
	return &Commission{
		ID:        c.ID,
		LeadID:    c.LeadID,
		AgentID:   c.AgentID,
		Amount:    c.Amount,
		Status:    string(c.Status),
		PaidAt:    c.PaidAt,
		CreatedAt: c.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&BankOffer{},
		&Lead{},
		&LeadDocument{},
		&LeadTransition{},
		&Commission{},
	)
}
