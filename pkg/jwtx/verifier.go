package jwtx

// Verifier validates a token and returns its claims when it is legit.
// *Issuer satisfies this; middleware should depend on the interface so
// tests can stub verification.
type Verifier interface {
	Verify(token string) (Claims, error)
}
