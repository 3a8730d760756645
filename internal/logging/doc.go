// Package logging provides structured logging for onboard.
//
// It wraps a package-level zap logger. Logging is silent by default so the
// terminal UI owns the screen; set a level through the configuration file,
// the --log-level flag or the ONBOARD_LOG_LEVEL environment variable:
//
//	logging.Initialize("debug", "/tmp/onboard.log")
//	logging.Debug("stop search issued", zap.String("query", q), zap.Int("seq", seq))
package logging
