// Package logging configures the process-wide slog logger.
//
// Records are JSON on stderr and always carry "module" and "version"
// attributes. At debug level the source location is added as well.
//
// Level names are matched case-insensitively. Besides the slog names the
// exporter's own vocabulary is accepted, so "warning" maps to WARN and
// "critical" to ERROR. Anything unrecognized, including the empty string,
// yields INFO.
//
// The CLI installs the default logger before running any command:
//
//	logging.SetDefaultStructuredLoggerWithLevel("hwobserver", version, cmd.String("log-level"))
//
// The --log-level flag reads LOG_LEVEL when unset:
//
//	LOG_LEVEL=debug hwobserver install --start
//
// Components that need a *log.Logger, such as the status server's
// http.Server, wrap an slog logger with NewLogLogger:
//
//	srv.ErrorLog = logging.NewLogLogger(logger, slog.LevelWarn)
package logging
