package logger

import "log/slog"

// Error records a single error under the key "error". Nil errors
// produce an empty attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestID records the request correlation ID.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Usuario records the login handle acting in this record.
func Usuario(login string) slog.Attr {
	if login == "" {
		return slog.Attr{}
	}
	return slog.String("usuario", login)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
