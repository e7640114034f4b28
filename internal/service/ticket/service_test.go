package ticket

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithScope(t *testing.T, employeeID, companyID, role string) context.Context {
	t.Helper()

	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        role,
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// memTicketRepo mirrors the guarded transitions of the real repository.
type memTicketRepo struct {
	tickets map[string]*ticket.Ticket
	seq     int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]*ticket.Ticket{}}
}

func (m *memTicketRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	m.seq++
	t.ID = fmt.Sprintf("ticket-%d", m.seq)
	t.Status = ticket.StatusOpen
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	t.Responses = []ticket.Response{}
	stored := t
	m.tickets[t.ID] = &stored
	return t, nil
}

func (m *memTicketRepo) GetByID(ctx context.Context, id string, companyID string) (ticket.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok || t.CompanyID != companyID {
		return ticket.Ticket{}, ticket.ErrTicketNotFound
	}
	return *t, nil
}

func (m *memTicketRepo) List(ctx context.Context, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	out := []ticket.Ticket{}
	for _, t := range m.tickets {
		if t.CompanyID == companyID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memTicketRepo) AppendResponse(ctx context.Context, r ticket.Response) (ticket.Response, error) {
	t, ok := m.tickets[r.TicketID]
	if !ok {
		return ticket.Response{}, ticket.ErrTicketNotFound
	}
	m.seq++
	r.ID = fmt.Sprintf("response-%d", m.seq)
	r.CreatedAt = time.Now()
	t.Responses = append(t.Responses, r)
	return r, nil
}

func (m *memTicketRepo) MarkInReview(ctx context.Context, id, companyID string) (int64, error) {
	t, ok := m.tickets[id]
	if !ok || t.CompanyID != companyID || t.Status != ticket.StatusOpen {
		return 0, nil
	}
	t.Status = ticket.StatusInReview
	return 1, nil
}

func (m *memTicketRepo) MarkResolved(ctx context.Context, id, companyID string, resolvedAt time.Time) (int64, error) {
	t, ok := m.tickets[id]
	if !ok || t.CompanyID != companyID || t.Status == ticket.StatusResolved {
		return 0, nil
	}
	t.Status = ticket.StatusResolved
	t.ResolvedAt = &resolvedAt
	return 1, nil
}

func seedTicket(t *testing.T, repo *memTicketRepo) string {
	t.Helper()
	created, err := repo.Create(context.Background(), ticket.Ticket{
		CompanyID:   "company-1",
		EmployeeID:  "emp-1",
		Subject:     "crachá não funciona",
		Description: "o leitor da entrada principal rejeita meu crachá",
		Priority:    ticket.PriorityMedium,
	})
	require.NoError(t, err)
	return created.ID
}

func TestTicketService_ResolveIsIdempotent(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)

	id := seedTicket(t, repo)
	ctx := ctxWithScope(t, "hr-1", "company-1", "hr")

	first, err := svc.MarkResolved(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(ticket.StatusResolved), first.Status)
	require.NotNil(t, first.ResolvedAt)

	// second resolve succeeds without touching resolved_at
	second, err := svc.MarkResolved(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *first.ResolvedAt, *second.ResolvedAt)
}

func TestTicketService_AppendAfterResolve(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)

	id := seedTicket(t, repo)
	hrCtx := ctxWithScope(t, "hr-1", "company-1", "hr")

	_, err := svc.MarkResolved(hrCtx, id)
	require.NoError(t, err)

	// the thread stays open for follow-ups after resolution
	empCtx := ctxWithScope(t, "emp-1", "company-1", "employee")
	updated, err := svc.AppendResponse(empCtx, ticket.AppendResponseRequest{
		TicketID: id,
		Message:  "obrigado, voltou a funcionar",
	})
	require.NoError(t, err)
	assert.Equal(t, string(ticket.StatusResolved), updated.Status)
	require.Len(t, updated.Responses, 1)
	assert.Equal(t, "emp-1", updated.Responses[0].AuthorID)
}

func TestTicketService_MarkInReviewOnlyFromOpen(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)

	id := seedTicket(t, repo)
	ctx := ctxWithScope(t, "manager-1", "company-1", "manager")

	inReview, err := svc.MarkInReview(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(ticket.StatusInReview), inReview.Status)

	// in_review -> in_review is not a legal transition
	_, err = svc.MarkInReview(ctx, id)
	assert.ErrorIs(t, err, ticket.ErrNotReviewable)
}

func TestTicketService_ResolveRequiresPermission(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)

	id := seedTicket(t, repo)
	ctx := ctxWithScope(t, "emp-1", "company-1", "employee")

	_, err := svc.MarkResolved(ctx, id)
	assert.Error(t, err)
}

func TestTicketService_GetScopedToOpener(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)

	id := seedTicket(t, repo)

	// another employee of the same company cannot read it
	otherCtx := ctxWithScope(t, "emp-2", "company-1", "employee")
	_, err := svc.Get(otherCtx, id)
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)

	// the opener can
	ownerCtx := ctxWithScope(t, "emp-1", "company-1", "employee")
	found, err := svc.Get(ownerCtx, id)
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)
}
