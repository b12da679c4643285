package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
const (
	// Invocation
	KeyCommand = "command" // labctl sub-command: user add, user list, ...
	KeyServer  = "server"  // Server base URL

	// HTTP transport
	KeyMethod     = "method"      // HTTP method
	KeyPath       = "path"        // Request path
	KeyStatus     = "status"      // HTTP status code
	KeyRequestID  = "request_id"  // X-Request-ID sent with the request
	KeyDurationMs = "duration_ms" // Round-trip duration in milliseconds

	// Administration
	KeyUsername       = "username"        // Login name
	KeyExperimenterID = "experimenter_id" // Numeric user id
	KeyGroupID        = "group_id"        // Numeric group id
	KeyGroup          = "group"           // Group reference as typed by the user
	KeyRole           = "role"            // member or owner
	KeyCount          = "count"           // Number of records

	KeyError     = "error"      // Error message
	KeyErrorCode = "error_code" // API error code or exit code
)

// Command returns a slog.Attr for the sub-command name
func Command(name string) slog.Attr {
	return slog.String(KeyCommand, name)
}

// Server returns a slog.Attr for the server URL
func Server(url string) slog.Attr {
	return slog.String(KeyServer, url)
}

// Method returns a slog.Attr for an HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// Path returns a slog.Attr for a request path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// RequestID returns a slog.Attr for the request correlation id
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// DurationMs returns a slog.Attr for a duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Username returns a slog.Attr for a login name
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// ExperimenterID returns a slog.Attr for a user id
func ExperimenterID(id int64) slog.Attr {
	return slog.Int64(KeyExperimenterID, id)
}

// GroupID returns a slog.Attr for a group id
func GroupID(id int64) slog.Attr {
	return slog.Int64(KeyGroupID, id)
}

// Group returns a slog.Attr for a group reference
func Group(ref string) slog.Attr {
	return slog.String(KeyGroup, ref)
}

// Role returns a slog.Attr for a membership role
func Role(role string) slog.Attr {
	return slog.String(KeyRole, role)
}

// Count returns a slog.Attr for a record count
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for an error code
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}
