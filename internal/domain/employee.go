package domain

// Role of an authenticated user. Authentication itself is owned by an
// external collaborator; the core only reads the role for dispatch.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleEmployee   Role = "EMPLOYEE"
	RoleCitizen    Role = "CITIZEN"
)

// Employee is the external identity referenced by routes, attendance
// and performance rows. Owned by the directory collaborator.
type Employee struct {
	ID   int64
	Name string
	Role Role
}
