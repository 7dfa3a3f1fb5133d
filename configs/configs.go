// Package configs carries build metadata injected at link time.
package configs

import (
	"fmt"
)

var (
	BuildVersion string = "N/A"
	BuildDate    string = "N/A"
	BuildCommit  string = "N/A"
)

// Example boot:
// go build -ldflags "-X rsakeygen/configs.BuildVersion=v1.0.1 -X 'rsakeygen/configs.BuildDate=$(date +'%Y/%m/%d %H:%M:%S')' -X 'rsakeygen/configs.BuildCommit=$(git rev-parse --short HEAD)'" ./cmd/server
func BuildVerPrint() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", BuildVersion, BuildDate, BuildCommit)
}

// LogFields returns the build metadata as zap key/value pairs.
func LogFields() []any {
	return []any{"version", BuildVersion, "date", BuildDate, "commit", BuildCommit}
}

// UserAgent identifies the keygen client in outgoing requests.
func UserAgent() string {
	return "rsakeygen/" + BuildVersion
}
