// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/familytower/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/familytower/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/familytower/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/familytower
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line build description printed by `familytower version`.
func String() string {
	return fmt.Sprintf("familytower %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return String() + "\n"
}

// UserAgent identifies the server in HTTP responses.
func UserAgent() string {
	return "familytower/" + Version
}
