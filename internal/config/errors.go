package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidServerConfig indicates unusable HTTP server settings.
	ErrInvalidServerConfig = errors.New("invalid server configuration")

	// ErrInvalidLogConfig indicates an unknown log level.
	ErrInvalidLogConfig = errors.New("invalid log configuration")
)
