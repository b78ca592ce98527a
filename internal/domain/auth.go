package domain

// Role is the caller's role as asserted by the auth collaborator.
type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleOwner     Role = "owner"
)

// ParseRole maps a stored role code to a Role. Unknown codes are treated as RoleUser.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleOwner:
		return Role(s)
	default:
		return RoleUser
	}
}

// AuthContext identifies the caller of a request. The zero value is an anonymous caller.
type AuthContext struct {
	UserID int64
	Role   Role
}

// Anonymous returns the AuthContext of an unauthenticated caller.
func Anonymous() AuthContext {
	return AuthContext{}
}

// IsAnonymous reports whether no user is attached.
func (a AuthContext) IsAnonymous() bool {
	return a.UserID == 0 || a.Role == RoleAnonymous
}

// CanManageEvents reports whether the caller may see unpublished events.
func (a AuthContext) CanManageEvents() bool {
	return !a.IsAnonymous() && (a.Role == RoleAdmin || a.Role == RoleOwner)
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(auth AuthContext, email string) (string, error)
}

// TokenVerifier verifies a token and returns the caller it identifies.
type TokenVerifier interface {
	Verify(token string) (AuthContext, error)
}
