package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetPrefixedEnvironmentVariables returns the variables starting with prefix, keyed with the prefix removed
func GetPrefixedEnvironmentVariables(prefix string) map[string]string {
	prefixed := map[string]string{}

	for name, value := range GetEnvironmentVariables() {
		if key, found := strings.CutPrefix(name, prefix); found && key != "" {
			prefixed[key] = value
		}
	}

	return prefixed
}
