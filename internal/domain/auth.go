package domain

// Identity is the caller established from a verified token. It lives for one request.
type Identity struct {
	Subject string
	Email   string
	Role    UserRole
}

// IsAdmin reports whether the caller holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}
