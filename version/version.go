// Package version exposes build metadata injected at link time.
package version

// Set via -ldflags at build time.
//
//nolint:gochecknoglobals // build metadata, effectively const
var (
	name    = "recording-trimmer"
	version = "dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the VCS commit the binary was built from.
func Commit() string {
	return commit
}
