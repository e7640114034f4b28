package dashboard

import "github.com/pontohq/ponto-backend-go/internal/pkg/validator"

// DashboardRequest optionally targets another company (admin only).
type DashboardRequest struct {
	CompanyID *string `json:"company_id,omitempty"`
}

type DashboardResponse struct {
	TotalEmployees  int     `json:"total_employees"`
	PendingAbsences int     `json:"pending_absences"`
	OpenTickets     int     `json:"open_tickets"`
	HighPriority    int     `json:"high_priority_tickets"`
	PresenceRate    float64 `json:"presence_rate"` // % of active employees with a completed pair, trailing 30 days

	RecentActivity []Activity `json:"recent_activity"`
}

// Activity is one entry of the recent-events feed.
type Activity struct {
	EmployeeName string `json:"employee_name"`
	Action       string `json:"action"` // clock_in, clock_out, absence_submitted, ticket_opened
	OccurredAt   string `json:"occurred_at"`
}

type ActivityFilter struct {
	Limit int `json:"limit"`
}

func (f *ActivityFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Limit > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 50",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
