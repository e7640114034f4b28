package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCompany_OwnCompany(t *testing.T) {
	t.Parallel()
	s := Scope{CompanyID: "company-a", Role: RoleHR}

	got, err := s.ResolveCompany(nil)
	require.NoError(t, err)
	assert.Equal(t, "company-a", got)

	own := "company-a"
	got, err = s.ResolveCompany(&own)
	require.NoError(t, err)
	assert.Equal(t, "company-a", got)

	empty := ""
	got, err = s.ResolveCompany(&empty)
	require.NoError(t, err)
	assert.Equal(t, "company-a", got)
}

func TestResolveCompany_CrossCompanyForbidden(t *testing.T) {
	t.Parallel()
	other := "company-b"

	for _, role := range []Role{RoleManager, RoleHR, RoleEmployee} {
		s := Scope{CompanyID: "company-a", Role: role}
		got, err := s.ResolveCompany(&other)
		assert.ErrorIs(t, err, ErrCompanyForbidden, "role %s", role)
		assert.Empty(t, got)
	}
}

func TestResolveCompany_AdminMayTargetAnyCompany(t *testing.T) {
	t.Parallel()
	s := Scope{CompanyID: "company-a", Role: RoleAdmin}

	other := "company-b"
	got, err := s.ResolveCompany(&other)
	require.NoError(t, err)
	assert.Equal(t, "company-b", got)
}

func TestRoleIsReviewer(t *testing.T) {
	t.Parallel()
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleManager, true},
		{RoleHR, true},
		{RoleEmployee, false},
		{Role("intern"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.role.IsReviewer(), "role %s", c.role)
	}
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	assert.True(t, HasPermission(RoleHR, PermissionAbsenceReview))
	assert.True(t, HasPermission(RoleManager, PermissionTicketResolve))
	assert.False(t, HasPermission(RoleEmployee, PermissionAbsenceReview))
	assert.False(t, HasPermission(RoleEmployee, PermissionEmployeeManage))
	assert.False(t, HasPermission(Role("ghost"), PermissionViewOwnProfile))
}
