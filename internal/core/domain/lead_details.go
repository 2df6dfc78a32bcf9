package domain

import "time"

// LeadDetailsPatch lists the lead fields that may be edited outside the status
// lifecycle. A nil field is left unchanged.
type LeadDetailsPatch struct {
	Name          *string
	Phone         *string
	Email         *string
	PAN           *string
	Aadhar        *string
	Income        *float64
	PropertyValue *float64
	LoanAmount    *float64
	Tenure        *int
	AssignedTo    *uint
	RMID          *uint
}

// EditableLeadFields is the JSON allow-list accepted by the details update.
var EditableLeadFields = map[string]bool{
	"name":           true,
	"phone":          true,
	"email":          true,
	"pan":            true,
	"aadhar":         true,
	"income":         true,
	"property_value": true,
	"loan_amount":    true,
	"tenure":         true,
	"assigned_to":    true,
	"rm_id":          true,
}

// TouchesAssignment reports whether the patch changes assignment references.
func (p LeadDetailsPatch) TouchesAssignment() bool {
	return p.AssignedTo != nil || p.RMID != nil
}

// IsEmpty reports whether the patch sets no field.
func (p LeadDetailsPatch) IsEmpty() bool {
	return p == LeadDetailsPatch{}
}

// Validate checks numeric fields are in range.
func (p LeadDetailsPatch) Validate() error {
	if p.Income != nil && *p.Income < 0 {
		return ErrInvalidInput
	}
	if p.PropertyValue != nil && *p.PropertyValue < 0 {
		return ErrInvalidInput
	}
	if p.LoanAmount != nil && *p.LoanAmount <= 0 {
		return ErrInvalidInput
	}
	if p.Tenure != nil && *p.Tenure <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// ApplyDetails returns a copy of lead with the patch applied. updated_at only
// moves when at least one field actually changed. Status is never touched.
func ApplyDetails(lead Lead, p LeadDetailsPatch, now time.Time) (Lead, bool) {
	changed := false

	setString := func(dst *string, v *string) {
		if v != nil && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	setRef := func(dst **uint, v *uint) {
		if v == nil {
			return
		}
		if *dst == nil || **dst != *v {
			id := *v
			*dst = &id
			changed = true
		}
	}

	setString(&lead.Name, p.Name)
	setString(&lead.Phone, p.Phone)
	setString(&lead.Email, p.Email)
	setString(&lead.PAN, p.PAN)
	setString(&lead.Aadhar, p.Aadhar)
	setFloat(&lead.Income, p.Income)
	setFloat(&lead.PropertyValue, p.PropertyValue)
	setFloat(&lead.LoanAmount, p.LoanAmount)
	if p.Tenure != nil && lead.Tenure != *p.Tenure {
		lead.Tenure = *p.Tenure
		changed = true
	}
	setRef(&lead.AssignedTo, p.AssignedTo)
	setRef(&lead.RMID, p.RMID)

	if changed {
		lead.UpdatedAt = advance(lead.UpdatedAt, now)
	}
	return lead, changed
}
