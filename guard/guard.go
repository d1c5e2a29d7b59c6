package guard

import "github.com/arnav2305/eduprime/models"

// Action is the single outcome of evaluating a protected route access.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectHome
	Loading
)

type Decision struct {
	Action     Action
	RedirectTo string
	Notice     string
}

const (
	LoginRoute         = "/login"
	UserDashboardRoute = "/dashboard"
	AdminPanelRoute    = "/admin"
)

// HomeFor returns the landing route for a resolved role.
func HomeFor(role string) string {
	if role == models.RoleAdmin {
		return AdminPanelRoute
	}
	return UserDashboardRoute
}

// Decide gates access to a route requiring requiredRole. Identity still being
// resolved always yields Loading, never a view of protected content. Exactly
// one decision is produced per evaluation; callers must not re-evaluate on a
// timer, only when an input changes.
func Decide(authenticated bool, role string, initializing bool, requiredRole string) Decision {
	if initializing {
		return Decision{Action: Loading}
	}
	if !authenticated {
		return Decision{
			Action:     RedirectLogin,
			RedirectTo: LoginRoute,
			Notice:     "Please login to continue",
		}
	}
	if requiredRole != "" && role != requiredRole {
		notice := "You are not authorized to view this page"
		if requiredRole == models.RoleAdmin {
			notice = "Admin privileges required"
		}
		return Decision{
			Action:     RedirectHome,
			RedirectTo: HomeFor(role),
			Notice:     notice,
		}
	}
	return Decision{Action: Allow}
}
