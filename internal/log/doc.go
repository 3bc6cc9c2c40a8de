// Package log provides the application logger, built on top of the standard
// slog package.
//
// The SecureHandler wraps any slog.Handler and masks values that should not
// end up in logs shared from CI runs:
//   - HTTP credentials (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Email addresses, whether under an "email" key or embedded in a value
//     such as a form body
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("posting reminder", "email", cfg.ReminderEmail) // email=t***@gmail.com
//	slog.SetDefault(logger)
package log
