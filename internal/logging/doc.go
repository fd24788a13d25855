// Package logger provides leveled logging for n8nsync commands.
//
// Log lines go to stderr through a log/slog handler from
// github.com/lmittmann/tint, so stdout stays reserved for command output.
//
// # Verbosity Levels
//
//   - default: WarnfAlways and Errorf
//   - --verbose: adds Infof and Warnf
//   - --debug: adds debug details such as request URLs
//
// # Usage
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Fetched %d workflows", n)
//
// The root command creates the logger in PersistentPreRun and passes it to
// the workflows package.
package logger
