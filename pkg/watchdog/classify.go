package watchdog

import "net/http"

// Result classifies the outcome of an outgoing call.
type Result int

const (
	// ResultOK covers every response that does not touch the session,
	// including business-logic errors the caller handles itself.
	ResultOK Result = iota
	// ResultSessionInvalid marks responses that mean the caller is no
	// longer authenticated.
	ResultSessionInvalid
)

// Classify maps a response status to a session classification. The
// backend does not distinguish "expired" from "never authenticated",
// so both arrive as 401 and collapse into a single invalid result.
func Classify(status int) Result {
	if status == http.StatusUnauthorized {
		return ResultSessionInvalid
	}
	return ResultOK
}
