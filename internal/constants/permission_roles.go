package constants

import rc "gfg-stable-backend/internal/pkg/constants"

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewHorses:         {rc.Admin, rc.Member, rc.Finance, rc.Manager},
	ManageHorses:       {rc.Admin, rc.Manager},
	UpdatePerformance:  {rc.Admin, rc.Manager},
	ManageFinancials:   {rc.Admin, rc.Finance, rc.Manager},
	PurchaseShares:     {rc.Admin, rc.Member, rc.Finance, rc.Manager},
	ManageUsers:        {rc.Admin},
	ManageTaxDocuments: {rc.Admin},
	ViewTaxDocuments:   {rc.Admin, rc.Member, rc.Finance, rc.Manager},

	ViewAnyHoldings:     {rc.Admin, rc.Finance, rc.Manager},
	PurchaseForMembers:  {rc.Admin, rc.Finance, rc.Manager},
	ViewAnyTaxDocuments: {rc.Admin, rc.Finance},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
