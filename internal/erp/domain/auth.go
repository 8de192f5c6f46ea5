package domain

// LoginResult is what a successful authentication yields. The token is a
// self-contained signed bearer token; nothing is persisted server-side.
type LoginResult struct {
	Token    string
	Username string // the user's email
	Role     string
}
