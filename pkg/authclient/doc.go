// Package authclient wraps the three backend session operations:
// authenticate, check the current session, and terminate it.
//
// Every call goes through the same-origin proxy with credential
// forwarding enabled: the underlying http.Client carries a cookie jar
// so the backend-issued session cookie travels with each request, and
// the watchdog transport is expected to be installed on that client so
// invalidations reach the session-state store.
package authclient
