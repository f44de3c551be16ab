package rbac

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

const (
	ResourceEmployee      = "employee"
	ResourceAttendance    = "attendance"
	ResourceLoan          = "loan"
	ResourceLoanRepayment = "loan_repayment"
	ResourceSalary        = "salary"
	ResourceUser          = "user"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Permission struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// DefaultPolicy grants administrators everything and plain users read access
// to the bookkeeping records. Accounts stay admin-only.
func DefaultPolicy() []Permission {
	return []Permission{
		{Role: RoleAdmin, Resource: "*", Action: "*"},
		{Role: RoleUser, Resource: ResourceEmployee, Action: ActionRead},
		{Role: RoleUser, Resource: ResourceAttendance, Action: ActionRead},
		{Role: RoleUser, Resource: ResourceLoan, Action: ActionRead},
		{Role: RoleUser, Resource: ResourceLoanRepayment, Action: ActionRead},
		{Role: RoleUser, Resource: ResourceSalary, Action: ActionRead},
	}
}
