// Package sl holds slog attribute helpers.
package sl

import "log/slog"

// Err returns an "error" attribute carrying err's message.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
