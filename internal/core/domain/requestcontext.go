package domain

// Caller identifies the authenticated principal behind a request.
type Caller struct {
	UserID      uint
	Username    string
	Role        string
	Permissions []string
}

func (c Caller) HasRole(names ...string) bool {
	for _, n := range names {
		if c.Role == n {
			return true
		}
	}
	return false
}

func (c Caller) HasPermission(name string) bool {
	for _, p := range c.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// RequestContext carries the per-request facts the audit trail needs. The
// auth middleware fills it in and handlers pass it to services.
type RequestContext struct {
	Caller     Caller
	IP         string
	UserAgent  string
	DeviceInfo string
	SessionID  string
	Token      string
}
