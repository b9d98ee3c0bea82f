// Package buildinfo carries the identifiers stamped in with -ldflags at
// build time. Plain `go build` keeps the dev defaults.
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the identifier shown in the window title and the console banner.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}
