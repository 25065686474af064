package env

import (
	"strings"
)

const Prefix = "DSC_"

// Files returns the supported names of the env files, in the order of precedence.
func Files() []string {
	return []string{
		".env.local",
		".env",
	}
}

// FlagToEnv converts a flag name to the corresponding ENV variable name.
// For example "log-file" -> "DSC_LOG_FILE".
func FlagToEnv(flag string) string {
	return Prefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
