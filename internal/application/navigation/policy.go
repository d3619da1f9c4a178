// Package navigation is the role-based routing policy of the client: which
// menu each role sees and where a session lands for a requested path.
package navigation

import (
	"strings"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// Well-known paths.
const (
	PathHome          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathDashboard     = "/dashboard"
	PathWorkshopSetup = "/workshop-setup"
)

// NavItem one menu entry.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var navByRole = map[entity.Role][]NavItem{
	entity.RoleOwner: {
		{"/dashboard", "Dashboard"},
		{"/jobs", "Jobs"},
		{"/managers", "Managers"},
		{"/payments", "Payments"},
		{"/reports", "Reports"},
		{"/settings", "Settings"},
	},
	entity.RoleManager: {
		{"/dashboard", "Dashboard"},
		{"/jobs", "Jobs"},
		{"/jobs/new", "New Job"},
		{"/payments", "Payments"},
	},
}

// Items returns the menu of role; nil for unknown roles.
func Items(role entity.Role) []NavItem {
	items := navByRole[role]
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}

// Access kind of a route.
type Access int

const (
	// PublicOnly routes are for anonymous visitors; signed-in users are sent to the dashboard.
	PublicOnly Access = iota
	// Protected routes require a session, optionally of specific roles.
	Protected
)

// Route an entry of the route table. Segments starting with ':' match any value.
type Route struct {
	Pattern string
	Access  Access
	Roles   []entity.Role
}

// Routes is the client route table. Literal patterns take precedence over parameterized ones.
var Routes = []Route{
	{Pattern: PathHome, Access: PublicOnly},
	{Pattern: PathLogin, Access: PublicOnly},
	{Pattern: PathRegister, Access: PublicOnly},
	{Pattern: PathWorkshopSetup, Access: Protected, Roles: []entity.Role{entity.RoleOwner}},
	{Pattern: PathDashboard, Access: Protected},
	{Pattern: "/jobs", Access: Protected},
	{Pattern: "/jobs/new", Access: Protected, Roles: []entity.Role{entity.RoleManager}},
	{Pattern: "/jobs/:id", Access: Protected},
	{Pattern: "/payments", Access: Protected},
	{Pattern: "/managers", Access: Protected, Roles: []entity.Role{entity.RoleOwner}},
	{Pattern: "/reports", Access: Protected, Roles: []entity.Role{entity.RoleOwner}},
	{Pattern: "/settings", Access: Protected, Roles: []entity.Role{entity.RoleOwner}},
}

// Decision outcome of Resolve. Pending means the session is still loading:
// render a placeholder and neither allow nor redirect.
type Decision struct {
	Allow      bool   `json:"allow"`
	Pending    bool   `json:"pending"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func redirect(to, reason string) Decision {
	return Decision{RedirectTo: to, Reason: reason}
}

// Resolve decides what happens when session requests path.
func Resolve(session auth.Session, path string) Decision {
	route, ok := Match(path)
	if !ok {
		return redirect(PathHome, "unknown path")
	}
	if session.Loading {
		return Decision{Pending: true}
	}

	switch route.Access {
	case PublicOnly:
		if session.IsAuthenticated() {
			return redirect(PathDashboard, "already signed in")
		}
		return Decision{Allow: true}
	default:
		if !session.IsAuthenticated() {
			return redirect(PathLogin, "sign in required")
		}
		if session.User.NeedsWorkshopSetup() && route.Pattern != PathWorkshopSetup {
			return redirect(PathWorkshopSetup, "workshop setup required")
		}
		if !session.IsAuthorized(route.Roles...) {
			return redirect(PathDashboard, "role not allowed")
		}
		return Decision{Allow: true}
	}
}

// Match finds the route for path, ignoring the query string and a trailing slash.
func Match(path string) (Route, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = PathHome
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range Routes {
		if r.Pattern == path {
			return r, true
		}
	}
	segs := strings.Split(path, "/")
	for _, r := range Routes {
		if matchSegments(strings.Split(r.Pattern, "/"), segs) {
			return r, true
		}
	}
	return Route{}, false
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
