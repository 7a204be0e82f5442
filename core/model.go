package core

// Route is a route descriptor owned by the routing collaborator.
// Permissions holds either a static permissions document or a string
// source identifier pointing at a remote document.
type Route struct {
	Path          string       `json:"path"`
	Permissions   Document     `json:"permissions,omitempty"`
	DeniedRoute   string       `json:"deniedRoute,omitempty"`
	Authorization OverrideFunc `json:"-"`
}

// OverrideFunc is a caller-supplied decision strategy that preempts
// structural matching. It is invoked with the query, the resolved
// permissions (never nil), the route descriptor, and the parameters
// bound on the current route.
type OverrideFunc func(query any, permissions Document, route *Route, params map[string]string) bool
