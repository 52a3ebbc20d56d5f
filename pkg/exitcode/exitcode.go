// Package exitcode provides standardized exit codes for spdxlint
package exitcode

// Exit codes for the spdxlint CLI. A compliance finding exits with
// GeneralError; fatal conditions use the more specific codes.
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	FileSystemError = 3
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case FileSystemError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
