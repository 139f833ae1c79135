package constants

const (
	ViewData        = "view_data"
	ManagePortfolio = "manage_portfolio"
	DeleteRecords   = "delete_records"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:        {Viewer, Manager, Admin, Superadmin},
	ManagePortfolio: {Manager, Admin, Superadmin},
	DeleteRecords:   {Admin, Superadmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	for _, r := range PermissionRoles[permission] {
		if r == role {
			return true
		}
	}
	return false
}
