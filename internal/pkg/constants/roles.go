package constants

const (
	Admin   = "admin"
	Member  = "member"
	Finance = "finance"
	Manager = "manager"
)

// Seeded role ids.
const (
	AdminRoleID   uint = 1
	MemberRoleID  uint = 2
	FinanceRoleID uint = 3
	ManagerRoleID uint = 4
)

// ValidRoles is the set of seeded role names.
var ValidRoles = []string{Admin, Member, Finance, Manager}

// RoleDescriptions is used by the seeder.
var RoleDescriptions = map[string]string{
	Admin:   "Full system access",
	Member:  "Syndicate member with access to owned horses and documents",
	Finance: "Finance staff managing valuations and tax documents",
	Manager: "Stable manager maintaining horse records",
}

// RoleIDs maps each seeded role to its fixed id.
var RoleIDs = map[string]uint{
	Admin:   AdminRoleID,
	Member:  MemberRoleID,
	Finance: FinanceRoleID,
	Manager: ManagerRoleID,
}

// IsValidRole returns true if role is one of the seeded names.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
