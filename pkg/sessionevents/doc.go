// Package sessionevents pushes session-state changes to connected
// browser tabs over a websocket.
//
// Each tab opens its own socket; there is no tab-to-tab
// synchronization. On connect the current state is sent immediately,
// then every Set and Clear of the session-state store produces one
// frame, so banners and guards in every open view learn about an
// invalidation without polling.
package sessionevents
