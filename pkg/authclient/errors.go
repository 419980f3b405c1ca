package authclient

import "errors"

var (
	// ErrNoSession indicates the backend knows no valid session for
	// this client.
	ErrNoSession = errors.New("authclient.no_session")

	// ErrUnexpectedStatus indicates the backend answered with a status
	// the operation does not know how to interpret.
	ErrUnexpectedStatus = errors.New("authclient.unexpected_status")
)

// AuthError is an explicit credential rejection. It carries the
// backend's message when one was provided so the sign-in form can show
// it verbatim. It is not a session invalidation.
type AuthError struct {
	Message    string
	StatusCode int
}

func (e *AuthError) Error() string {
	return e.Message
}
