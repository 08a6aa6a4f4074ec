package domain

// ContextKey is the type used for gin context keys set by middleware.
type ContextKey string

// KeyPrincipal holds the authenticated Principal for the request.
const KeyPrincipal ContextKey = "principal"

// Principal is the authenticated caller. It is constructed once at the
// transport boundary and passed down as an explicit argument; core code
// never reads identity from ambient state.
type Principal struct {
	UserID int64
	Role   string
}
