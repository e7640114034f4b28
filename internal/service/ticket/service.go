package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/ticket"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

type TicketServiceImpl struct {
	ticketRepo ticket.TicketRepository
	now        func() time.Time
}

func NewTicketService(ticketRepo ticket.TicketRepository) ticket.TicketService {
	return &TicketServiceImpl{
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

// Create implements ticket.TicketService.
func (s *TicketServiceImpl) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	created, err := s.ticketRepo.Create(ctx, ticket.Ticket{
		CompanyID:   scope.CompanyID,
		EmployeeID:  scope.EmployeeID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    ticket.Priority(req.Priority),
	})
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	slog.Info("ticket opened", "ticket_id", created.ID, "employee_id", scope.EmployeeID, "priority", created.Priority)

	return toTicketResponse(created), nil
}

// Get implements ticket.TicketService. Openers see their own tickets;
// hr/manager/admin see all of the company's.
func (s *TicketServiceImpl) Get(ctx context.Context, id string) (ticket.TicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	found, err := s.ticketRepo.GetByID(ctx, id, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	if !scope.Can(user.PermissionTicketViewAll) && found.EmployeeID != scope.EmployeeID {
		return ticket.TicketResponse{}, ticket.ErrTicketNotFound
	}

	return toTicketResponse(found), nil
}

// List implements ticket.TicketService.
func (s *TicketServiceImpl) List(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}

	companyID, err := scope.ResolveCompany(filter.CompanyID)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}

	if !scope.Can(user.PermissionTicketViewAll) {
		filter.EmployeeID = &scope.EmployeeID
	}

	if err := filter.Validate(); err != nil {
		return ticket.ListTicketResponse{}, err
	}

	tickets, total, err := s.ticketRepo.List(ctx, filter, companyID)
	if err != nil {
		return ticket.ListTicketResponse{}, fmt.Errorf("failed to list tickets: %w", err)
	}

	responses := make([]ticket.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, toTicketResponse(t))
	}

	return ticket.ListTicketResponse{
		Tickets:    responses,
		TotalItems: total,
	}, nil
}

// AppendResponse implements ticket.TicketService. Appends never change the
// status and stay legal after resolution.
func (s *TicketServiceImpl) AppendResponse(ctx context.Context, req ticket.AppendResponseRequest) (ticket.TicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	found, err := s.ticketRepo.GetByID(ctx, req.TicketID, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if !scope.Can(user.PermissionTicketViewAll) && found.EmployeeID != scope.EmployeeID {
		return ticket.TicketResponse{}, ticket.ErrTicketNotFound
	}

	if _, err := s.ticketRepo.AppendResponse(ctx, ticket.Response{
		TicketID: req.TicketID,
		AuthorID: scope.EmployeeID,
		Message:  req.Message,
	}); err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to append response: %w", err)
	}

	updated, err := s.ticketRepo.GetByID(ctx, req.TicketID, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	return toTicketResponse(updated), nil
}

// MarkInReview implements ticket.TicketService. Only open tickets move.
func (s *TicketServiceImpl) MarkInReview(ctx context.Context, id string) (ticket.TicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if !scope.Can(user.PermissionTicketResolve) {
		return ticket.TicketResponse{}, user.ErrInsufficientPermissions
	}

	affected, err := s.ticketRepo.MarkInReview(ctx, id, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to mark ticket in review: %w", err)
	}
	if affected == 0 {
		// missing or not open; GetByID distinguishes
		if _, err := s.ticketRepo.GetByID(ctx, id, scope.CompanyID); err != nil {
			return ticket.TicketResponse{}, err
		}
		return ticket.TicketResponse{}, ticket.ErrNotReviewable
	}

	updated, err := s.ticketRepo.GetByID(ctx, id, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	return toTicketResponse(updated), nil
}

// MarkResolved implements ticket.TicketService. Resolving an already resolved
// ticket succeeds without touching resolved_at.
func (s *TicketServiceImpl) MarkResolved(ctx context.Context, id string) (ticket.TicketResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if !scope.Can(user.PermissionTicketResolve) {
		return ticket.TicketResponse{}, user.ErrInsufficientPermissions
	}

	affected, err := s.ticketRepo.MarkResolved(ctx, id, scope.CompanyID, s.now())
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to resolve ticket: %w", err)
	}

	// zero rows on an existing ticket is the idempotent repeat-resolve case
	updated, err := s.ticketRepo.GetByID(ctx, id, scope.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	if affected > 0 {
		slog.Info("ticket resolved", "ticket_id", id, "resolver_id", scope.EmployeeID)
	}

	return toTicketResponse(updated), nil
}

func toTicketResponse(t ticket.Ticket) ticket.TicketResponse {
	responses := make([]ticket.ResponseView, 0, len(t.Responses))
	for _, r := range t.Responses {
		responses = append(responses, ticket.ResponseView{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			Message:    r.Message,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}

	resp := ticket.TicketResponse{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		Subject:      t.Subject,
		Description:  t.Description,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		Responses:    responses,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
	if t.ResolvedAt != nil {
		v := t.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}
