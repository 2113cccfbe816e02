package contextkeys

type contextKey string

const (
	UserIDKey      contextKey = "userID"
	WorkspaceIDKey contextKey = "workspaceID"
	RoleKey        contextKey = "role"
)
