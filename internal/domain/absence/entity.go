package absence

import "time"

// Status is the closed set of absence-justification states. pending is the
// only non-terminal state: approved and rejected records are immutable.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// AbsenceType categorizes the justification.
type AbsenceType string

const (
	TypeMedical  AbsenceType = "medical"
	TypePersonal AbsenceType = "personal"
	TypeFamily   AbsenceType = "family"
	TypeOther    AbsenceType = "other"
)

func (t AbsenceType) IsValid() bool {
	switch t {
	case TypeMedical, TypePersonal, TypeFamily, TypeOther:
		return true
	}
	return false
}

// Absence is one justification request for a missed day.
type Absence struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time
	Reason     string
	Type       AbsenceType
	Status     Status

	AttachmentURL  *string
	AttachmentName *string

	ReviewNotes *string
	ReviewedBy  *string
	ReviewedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// StatusCounts is an atomic snapshot of the per-status totals used by
// dashboards; produced by a single grouped query so a record is never seen in
// two buckets or neither.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
