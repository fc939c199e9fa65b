// Package version carries build metadata injected via -ldflags.
package version

var (
	// Version is the release version, or "dev" for local builds.
	Version = "dev"
	// GitSHA is the git commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String formats the build metadata for -version output.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
