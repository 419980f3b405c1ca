// Package httpserver runs the dashboard's HTTP listener with graceful,
// signal-aware shutdown.
package httpserver
