// Package requestid assigns a correlation ID to every inbound request
// and makes it available through the context for logging.
package requestid
