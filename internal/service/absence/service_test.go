package absence

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
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

// memAbsenceRepo mimics the conditional-update semantics of the real
// repository: Review only affects a row still in pending.
type memAbsenceRepo struct {
	absences map[string]*absence.Absence
}

func newMemAbsenceRepo() *memAbsenceRepo {
	return &memAbsenceRepo{absences: map[string]*absence.Absence{}}
}

func (m *memAbsenceRepo) Create(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	if a.ID == "" {
		a.ID = "absence-" + time.Now().Format("150405.000000000")
	}
	a.Status = absence.StatusPending
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	stored := a
	m.absences[a.ID] = &stored
	return a, nil
}

func (m *memAbsenceRepo) GetByID(ctx context.Context, id string, companyID string) (absence.Absence, error) {
	a, ok := m.absences[id]
	if !ok || a.CompanyID != companyID {
		return absence.Absence{}, absence.ErrAbsenceNotFound
	}
	return *a, nil
}

func (m *memAbsenceRepo) List(ctx context.Context, filter absence.AbsenceFilter, companyID string) ([]absence.Absence, int64, error) {
	out := []absence.Absence{}
	for _, a := range m.absences {
		if a.CompanyID == companyID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memAbsenceRepo) Review(ctx context.Context, id, companyID string, to absence.Status, reviewerID string, notes *string, reviewedAt time.Time) (int64, error) {
	a, ok := m.absences[id]
	if !ok || a.CompanyID != companyID || a.Status != absence.StatusPending {
		return 0, nil
	}
	a.Status = to
	a.ReviewedBy = &reviewerID
	a.ReviewNotes = notes
	a.ReviewedAt = &reviewedAt
	a.UpdatedAt = reviewedAt
	return 1, nil
}

func (m *memAbsenceRepo) CountByStatus(ctx context.Context, companyID string) (absence.StatusCounts, error) {
	var counts absence.StatusCounts
	for _, a := range m.absences {
		if a.CompanyID != companyID {
			continue
		}
		switch a.Status {
		case absence.StatusPending:
			counts.Pending++
		case absence.StatusApproved:
			counts.Approved++
		case absence.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

// stubDirectory satisfies the employee repository with a single fixed
// employee, enough for the notification lookup.
type stubDirectory struct{}

func (stubDirectory) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (stubDirectory) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	return employee.Employee{ID: id, CompanyID: companyID, Name: "Maria Silva", Email: "maria.silva@acme.com.br"}, nil
}

func (stubDirectory) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, nil
}

func (stubDirectory) GetByIDUnscoped(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}

func (stubDirectory) GetByCPF(ctx context.Context, cpf, companyID string) (*employee.Employee, error) {
	return nil, nil
}

func (stubDirectory) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (stubDirectory) Update(ctx context.Context, e employee.Employee) error { return nil }

func (stubDirectory) UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error {
	return nil
}

func (stubDirectory) Deactivate(ctx context.Context, id, companyID string) error { return nil }

func (stubDirectory) CountEmailPrefix(ctx context.Context, localPart, domain string) (int, error) {
	return 0, nil
}

type recordingMailer struct {
	reviewed []string
}

func (m *recordingMailer) SendWelcome(to, employeeName, companyName, corporateEmail, temporaryPassword string) error {
	return nil
}

func (m *recordingMailer) SendAbsenceReviewed(to, employeeName, status string, reviewNotes *string) error {
	m.reviewed = append(m.reviewed, to+":"+status)
	return nil
}

func newTestAbsenceService(repo *memAbsenceRepo) (absence.AbsenceService, *recordingMailer) {
	mailer := &recordingMailer{}
	return NewAbsenceService(repo, stubDirectory{}, mailer), mailer
}

func seedAbsence(t *testing.T, repo *memAbsenceRepo, companyID string) string {
	t.Helper()
	created, err := repo.Create(context.Background(), absence.Absence{
		CompanyID:  companyID,
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Reason:     "consulta médica",
		Type:       absence.TypeMedical,
	})
	require.NoError(t, err)
	return created.ID
}

func TestAbsenceService_ApproveThenRejectFails(t *testing.T) {
	repo := newMemAbsenceRepo()
	svc, mailer := newTestAbsenceService(repo)

	id := seedAbsence(t, repo, "company-1")
	ctx := ctxWithScope(t, "hr-1", "company-1", "hr")

	notes := "atestado anexado"
	approved, err := svc.Approve(ctx, absence.ReviewAbsenceRequest{ID: id, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, string(absence.StatusApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "hr-1", *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	// terminal states are immutable
	_, err = svc.Reject(ctx, absence.ReviewAbsenceRequest{ID: id})
	assert.ErrorIs(t, err, absence.ErrAlreadyReviewed)

	// and the stored record still carries the first decision
	stored, err := repo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	assert.Equal(t, absence.StatusApproved, stored.Status)

	// exactly one notification, for the decision that landed
	assert.Equal(t, []string{"maria.silva@acme.com.br:approved"}, mailer.reviewed)
}

func TestAbsenceService_DoubleApproveFails(t *testing.T) {
	repo := newMemAbsenceRepo()
	svc, _ := newTestAbsenceService(repo)

	id := seedAbsence(t, repo, "company-1")
	ctx := ctxWithScope(t, "manager-1", "company-1", "manager")

	_, err := svc.Approve(ctx, absence.ReviewAbsenceRequest{ID: id})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, absence.ReviewAbsenceRequest{ID: id})
	assert.ErrorIs(t, err, absence.ErrAlreadyReviewed)
}

func TestAbsenceService_ReviewRequiresReviewerRole(t *testing.T) {
	repo := newMemAbsenceRepo()
	svc, _ := newTestAbsenceService(repo)

	id := seedAbsence(t, repo, "company-1")
	ctx := ctxWithScope(t, "emp-1", "company-1", "employee")

	_, err := svc.Approve(ctx, absence.ReviewAbsenceRequest{ID: id})
	assert.ErrorIs(t, err, absence.ErrReviewerRoleRequired)
}

func TestAbsenceService_ReviewMissingAbsence(t *testing.T) {
	repo := newMemAbsenceRepo()
	svc, _ := newTestAbsenceService(repo)

	ctx := ctxWithScope(t, "hr-1", "company-1", "hr")

	_, err := svc.Approve(ctx, absence.ReviewAbsenceRequest{ID: "does-not-exist"})
	assert.ErrorIs(t, err, absence.ErrAbsenceNotFound)
}

func TestAbsenceService_CreateOnBehalfRequiresPermission(t *testing.T) {
	repo := newMemAbsenceRepo()
	svc, _ := newTestAbsenceService(repo)

	other := "emp-2"
	req := absence.CreateAbsenceRequest{
		EmployeeID: &other,
		Date:       "2025-03-03",
		Reason:     "assunto pessoal",
		Type:       "personal",
	}

	ctx := ctxWithScope(t, "emp-1", "company-1", "employee")
	_, err := svc.Create(ctx, req)
	assert.Error(t, err)

	hrCtx := ctxWithScope(t, "hr-1", "company-1", "hr")
	created, err := svc.Create(hrCtx, req)
	require.NoError(t, err)
	assert.Equal(t, other, created.EmployeeID)
	assert.Equal(t, string(absence.StatusPending), created.Status)
}
