package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

// Role claim values carried by the bearer token.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

var Ctx = context.Background()
