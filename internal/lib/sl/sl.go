package sl

import "log/slog"

// Module tags a logger with the subsystem it belongs to.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// Err attaches an error to a log record under a uniform key.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Secret logs a value keeping only enough of it to recognize which
// credential it was.
func Secret(key, value string) slog.Attr {
	if len(value) > 6 {
		value = value[:6] + "..."
	}
	return slog.String(key, value)
}
