package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/ticket"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

// Create implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	query := `
		INSERT INTO tickets (id, company_id, employee_id, subject, description, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, employee_id, subject, description, priority, status, resolved_at, created_at, updated_at
	`

	var created ticket.Ticket
	err := q.QueryRow(ctx, query,
		t.ID,
		t.CompanyID,
		t.EmployeeID,
		t.Subject,
		t.Description,
		t.Priority,
		ticket.StatusOpen,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.EmployeeID,
		&created.Subject,
		&created.Description,
		&created.Priority,
		&created.Status,
		&created.ResolvedAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	created.Responses = []ticket.Response{}
	return created, nil
}

// GetByID implements ticket.TicketRepository. Responses are loaded ordered by
// created_at with id as tiebreaker; consumers rely on that order.
func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.company_id, t.employee_id, t.subject, t.description, t.priority, t.status, t.resolved_at, t.created_at, t.updated_at,
		       e.name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	var t ticket.Ticket
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID,
		&t.CompanyID,
		&t.EmployeeID,
		&t.Subject,
		&t.Description,
		&t.Priority,
		&t.Status,
		&t.ResolvedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket with id %s: %w", id, err)
	}

	responsesQuery := `
		SELECT r.id, r.ticket_id, r.author_id, r.message, r.created_at,
		       e.name
		FROM ticket_responses r
		JOIN employees e ON e.id = r.author_id
		WHERE r.ticket_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`

	rows, err := q.Query(ctx, responsesQuery, id)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to load ticket responses: %w", err)
	}
	defer rows.Close()

	t.Responses = []ticket.Response{}
	for rows.Next() {
		var resp ticket.Response
		if err := rows.Scan(&resp.ID, &resp.TicketID, &resp.AuthorID, &resp.Message, &resp.CreatedAt, &resp.AuthorName); err != nil {
			return ticket.Ticket{}, fmt.Errorf("failed to scan ticket response: %w", err)
		}
		t.Responses = append(t.Responses, resp)
	}
	if err := rows.Err(); err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to iterate ticket responses: %w", err)
	}

	return t, nil
}

// List implements ticket.TicketRepository. Threads are not loaded here; use
// GetByID for the full conversation.
func (r *ticketRepositoryImpl) List(ctx context.Context, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"t.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("t.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("t.priority = $%d", argIdx))
		args = append(args, *filter.Priority)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM tickets t " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.company_id, t.employee_id, t.subject, t.description, t.priority, t.status, t.resolved_at, t.created_at, t.updated_at,
		       e.name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		%s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]ticket.Ticket, 0)
	for rows.Next() {
		var t ticket.Ticket
		err := rows.Scan(
			&t.ID,
			&t.CompanyID,
			&t.EmployeeID,
			&t.Subject,
			&t.Description,
			&t.Priority,
			&t.Status,
			&t.ResolvedAt,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, total, nil
}

// AppendResponse implements ticket.TicketRepository. The timestamp comes from
// the database clock so thread order never depends on the caller.
func (r *ticketRepositoryImpl) AppendResponse(ctx context.Context, resp ticket.Response) (ticket.Response, error) {
	q := GetQuerier(ctx, r.db)

	if resp.ID == "" {
		resp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO ticket_responses (id, ticket_id, author_id, message, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, ticket_id, author_id, message, created_at
	`

	var created ticket.Response
	err := q.QueryRow(ctx, query, resp.ID, resp.TicketID, resp.AuthorID, resp.Message).Scan(
		&created.ID,
		&created.TicketID,
		&created.AuthorID,
		&created.Message,
		&created.CreatedAt,
	)
	if err != nil {
		return ticket.Response{}, fmt.Errorf("failed to append ticket response: %w", err)
	}
	return created, nil
}

// MarkInReview implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) MarkInReview(ctx context.Context, id, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = 'in_review', updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'open'
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark ticket %s in review: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// MarkResolved implements ticket.TicketRepository. The status <> 'resolved'
// guard keeps resolved_at at its first value; a second resolve affects zero
// rows and the caller treats that as a no-op.
func (r *ticketRepositoryImpl) MarkResolved(ctx context.Context, id, companyID string, resolvedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = 'resolved', resolved_at = $1, updated_at = $1
		WHERE id = $2 AND company_id = $3 AND status <> 'resolved'
	`

	tag, err := q.Exec(ctx, query, resolvedAt, id, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve ticket %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
