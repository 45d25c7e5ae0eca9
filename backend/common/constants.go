package common

// User roles
const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
)

// User statuses
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)
