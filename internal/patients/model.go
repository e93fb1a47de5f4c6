package patients

import "time"

// Patient is a person whose questionnaires are recorded.
type Patient struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DateOfBirth   string    `json:"dateOfBirth,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	PatientNumber string    `json:"patientNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateInput holds the fields accepted when registering a patient.
type CreateInput struct {
	FirstName     string `json:"firstName" validate:"required,min=1,max=255"`
	LastName      string `json:"lastName" validate:"required,min=1,max=255"`
	DateOfBirth   string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	PatientNumber string `json:"patientNumber" validate:"omitempty,max=100"`
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=255"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=255"`
	DateOfBirth   *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	PatientNumber *string `json:"patientNumber" validate:"omitempty,max=100"`
}

// Apply copies the set fields of in onto p.
func (in UpdateInput) Apply(p Patient) Patient {
	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = *in.DateOfBirth
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.PatientNumber != nil {
		p.PatientNumber = *in.PatientNumber
	}
	return p
}

// ListQuery filters and pages patient listings.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Normalize clamps paging into the accepted range.
func (q ListQuery) Normalize() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
