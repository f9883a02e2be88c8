package config

import "time"

// DaemonConfig describes the long-running game process the CLI talks to
type DaemonConfig struct {
	// gRPC unix socket shared by the daemon and the CLI
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// Single-instance lock; empty disables it
	PIDFile string `mapstructure:"pid_file"`

	// How long in-flight requests get to finish on SIGTERM
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Per-call deadline applied by the CLI client
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required"`
}

// LoggingConfig selects how game actions are logged
type LoggingConfig struct {
	// debug | info | warn | error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// json writes one object per line; text writes "LEVEL message key=value"
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout | stderr | file; file appends to FilePath
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Prefix lines with file:line of the log call
	IncludeCaller bool `mapstructure:"include_caller"`
}
