package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Time Records
	PermissionTimeRecordCreate  Permission = "timerecord.create"
	PermissionTimeRecordViewOwn Permission = "timerecord.view_own"
	PermissionTimeRecordViewAll Permission = "timerecord.view_all"

	// Absences
	PermissionAbsenceCreate  Permission = "absence.create"
	PermissionAbsenceViewOwn Permission = "absence.view_own"
	PermissionAbsenceViewAll Permission = "absence.view_all"
	PermissionAbsenceReview  Permission = "absence.review"

	// Tickets
	PermissionTicketCreate  Permission = "ticket.create"
	PermissionTicketViewAll Permission = "ticket.view_all"
	PermissionTicketResolve Permission = "ticket.resolve"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Company Management
	PermissionCompanyManage Permission = "company.manage"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionTimeRecordCreate,
		PermissionTimeRecordViewOwn,
		PermissionTimeRecordViewAll,
		PermissionAbsenceCreate,
		PermissionAbsenceViewOwn,
		PermissionAbsenceViewAll,
		PermissionAbsenceReview,
		PermissionTicketCreate,
		PermissionTicketViewAll,
		PermissionTicketResolve,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyManage,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionTimeRecordCreate,
		PermissionTimeRecordViewOwn,
		PermissionTimeRecordViewAll,
		PermissionAbsenceCreate,
		PermissionAbsenceViewOwn,
		PermissionAbsenceViewAll,
		PermissionAbsenceReview,
		PermissionTicketCreate,
		PermissionTicketViewAll,
		PermissionTicketResolve,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionTimeRecordCreate,
		PermissionTimeRecordViewOwn,
		PermissionTimeRecordViewAll,
		PermissionAbsenceViewAll,
		PermissionAbsenceReview,
		PermissionTicketCreate,
		PermissionTicketViewAll,
		PermissionTicketResolve,
		PermissionEmployeeViewAll,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionTimeRecordCreate,
		PermissionTimeRecordViewOwn,
		PermissionAbsenceCreate,
		PermissionAbsenceViewOwn,
		PermissionTicketCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
